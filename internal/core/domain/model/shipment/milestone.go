package shipment

import (
	"fmt"

	"deliveryoracle/internal/pkg/errs"
)

// Milestone is a courier-reported physical event for a shipment.
type Milestone int

const (
	// MilestoneUnknown represents an invalid or undefined milestone.
	MilestoneUnknown Milestone = iota

	// MilestonePickup reports the courier collected the goods at the
	// pickup location. Subject to a pickup geofence check.
	MilestonePickup

	// MilestoneInTransit reports an en-route progress update.
	MilestoneInTransit

	// MilestoneDelivered reports the courier dropped the goods at the
	// drop location. Subject to a drop geofence check.
	MilestoneDelivered

	// MilestoneCancelled reports the shipment was aborted.
	MilestoneCancelled
)

func getMilestoneStrings() map[Milestone]string {
	return map[Milestone]string{
		MilestonePickup:    "Pickup",
		MilestoneInTransit: "InTransit",
		MilestoneDelivered: "Delivered",
		MilestoneCancelled: "Cancelled",
	}
}

// MilestoneFromString parses the wire form of a milestone.
// Returns MilestoneUnknown with an error for unrecognized input.
func MilestoneFromString(s string) (Milestone, error) {
	for milestone, str := range getMilestoneStrings() {
		if str == s {
			return milestone, nil
		}
	}
	return MilestoneUnknown, errs.NewValueIsInvalidErrorWithCause(
		"milestone", fmt.Errorf("%q is not a valid milestone", s))
}

// Validate checks if the Milestone value is valid.
func (m Milestone) Validate() error {
	if _, ok := getMilestoneStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"milestone", fmt.Errorf("%d is not a valid milestone", m))
	}
	return nil
}

// String returns the wire name of the milestone.
// Implements the fmt.Stringer interface; safe on invalid values.
func (m Milestone) String() string {
	if str, ok := getMilestoneStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// ShipmentStatus maps the milestone to the shipment status it drives,
// via the fixed table Pickup→InTransit, InTransit→InTransit,
// Delivered→Delivered, Cancelled→Cancelled.
func (m Milestone) ShipmentStatus() (Status, error) {
	if err := m.Validate(); err != nil {
		return StatusUnknown, err
	}

	//nolint:exhaustive // MilestoneUnknown is rejected by Validate above
	table := map[Milestone]Status{
		MilestonePickup:    StatusInTransit,
		MilestoneInTransit: StatusInTransit,
		MilestoneDelivered: StatusDelivered,
		MilestoneCancelled: StatusCancelled,
	}
	return table[m], nil
}
