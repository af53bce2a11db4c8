package shipment

import (
	"fmt"

	"deliveryoracle/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with monotonic forward transitions:
//
//	Created ──> ReadyForPickup ──> InTransit ──┬──> Delivered
//	                                           └──> Cancelled
//
// Delivered and Cancelled are terminal. Stages may be skipped (a courier
// can report Pickup against a Created shipment), but a shipment never
// moves backwards.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusCreated is the initial status when a shipment is registered.
	StatusCreated

	// StatusReadyForPickup indicates the supplier has staged the goods.
	StatusReadyForPickup

	// StatusInTransit indicates the courier has picked up the goods.
	StatusInTransit

	// StatusDelivered indicates the courier has dropped the goods at the
	// buyer's location. Terminal.
	StatusDelivered

	// StatusCancelled indicates the shipment was aborted. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusCreated:        "Created",
		StatusReadyForPickup: "ReadyForPickup",
		StatusInTransit:      "InTransit",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusCreated:        "Created",
		StatusReadyForPickup: "ReadyForPickup",
		StatusInTransit:      "InTransit",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

// StatusFromString parses the persistence form of a shipment status.
// Returns StatusUnknown with an error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipment status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface; safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TimestampColumn returns the persistence column stamped when a shipment
// enters this status, making "record pickedUpAt when the shipment goes
// InTransit" a table-driven rule rather than ad hoc repository code.
// The second return value is false for statuses with no timestamp column.
func (s Status) TimestampColumn() (string, bool) {
	//nolint:exhaustive // Unknown and Created carry no timestamp column
	columns := map[Status]string{
		StatusReadyForPickup: "ready_at",
		StatusInTransit:      "picked_up_at",
		StatusDelivered:      "delivered_at",
		StatusCancelled:      "cancelled_at",
	}
	column, ok := columns[s]
	return column, ok
}

// CanTransitionTo reports whether moving from s to next respects the
// monotonic forward ordering. Identical replays are permitted (they are
// idempotent status-sets); terminal statuses refuse everything else.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == next {
		return nil
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, next))
	}
	if next < s {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("cannot regress from %s to %s", s, next))
	}
	return nil
}
