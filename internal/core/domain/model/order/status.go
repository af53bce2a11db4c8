package order

import (
	"fmt"

	"deliveryoracle/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// The order machine is driven by shipment milestones but remains a
// separate state machine:
//
//	Approved ──> Funded ──> InFulfillment ──> Shipped ──> Delivered
//	                                             │            │
//	                                             └─> Disputed ─┴─> Resolved
//	(Cancelled reachable from any non-terminal state)
//
// Delivered, Resolved and Cancelled are terminal: a milestone update
// must never regress an order to an earlier lifecycle stage.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusApproved is the initial post-negotiation status.
	StatusApproved

	// StatusFunded indicates escrow has been funded.
	StatusFunded

	// StatusInFulfillment indicates the supplier is preparing goods.
	StatusInFulfillment

	// StatusShipped indicates a shipment milestone placed goods with a courier.
	StatusShipped

	// StatusDelivered indicates delivery was confirmed. Terminal.
	StatusDelivered

	// StatusDisputed indicates a party raised a dispute.
	StatusDisputed

	// StatusResolved indicates a dispute was settled. Terminal.
	StatusResolved

	// StatusCancelled indicates the order was aborted. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "Unknown",
		StatusApproved:      "Approved",
		StatusFunded:        "Funded",
		StatusInFulfillment: "InFulfillment",
		StatusShipped:       "Shipped",
		StatusDelivered:     "Delivered",
		StatusDisputed:      "Disputed",
		StatusResolved:      "Resolved",
		StatusCancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusApproved:      "Approved",
		StatusFunded:        "Funded",
		StatusInFulfillment: "InFulfillment",
		StatusShipped:       "Shipped",
		StatusDelivered:     "Delivered",
		StatusDisputed:      "Disputed",
		StatusResolved:      "Resolved",
		StatusCancelled:     "Cancelled",
	}
}

// StatusFromString parses the persistence form of an order status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%d is not a valid status", s))
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
	return s == StatusDelivered || s == StatusResolved || s == StatusCancelled
}

// TimestampColumn returns the persistence column stamped when an order
// enters this status. Delivered and Resolved share the completion
// column. The second return value is false for statuses with no
// timestamp column.
func (s Status) TimestampColumn() (string, bool) {
	//nolint:exhaustive // remaining statuses carry no timestamp column
	columns := map[Status]string{
		StatusApproved:  "approved_at",
		StatusFunded:    "funded_at",
		StatusDelivered: "completed_at",
		StatusResolved:  "completed_at",
		StatusCancelled: "cancelled_at",
	}
	column, ok := columns[s]
	return column, ok
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Identical replays are idempotent no-ops; terminal statuses refuse
// every other transition, which is what prevents a Delivered order
// from regressing to Shipped.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == next {
		return nil
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, next))
	}
	return nil
}
