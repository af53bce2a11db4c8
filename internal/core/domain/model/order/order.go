package order

import (
	"errors"

	"deliveryoracle/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through the RestoreOrder factory method.
var ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")

// Order represents a purchase order as read from the persistence facade.
// The delivery oracle never creates orders; it loads them, drives their
// status in response to shipment milestones, and reads their typed
// metadata for attestation and reconciliation.
//
// Order maintains these invariants:
//   - Buyer and supplier wallets are stored in canonical lower-case form
//   - Status transitions respect the monotonic forward rule in Status
//   - Metadata is parsed once at the persistence boundary
type Order struct {
	id       kernel.UUID
	buyer    kernel.Wallet
	supplier kernel.Wallet
	status   Status
	metadata Metadata

	isConstructed bool
}

// RestoreOrder reconstructs an Order from persistence.
func RestoreOrder(
	id kernel.UUID,
	buyer kernel.Wallet,
	supplier kernel.Wallet,
	status Status,
	metadata Metadata,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		buyer.Validate(),
		supplier.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		buyer:         buyer,
		supplier:      supplier,
		status:        status,
		metadata:      metadata,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was properly constructed through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Buyer returns the buyer wallet.
func (o *Order) Buyer() kernel.Wallet {
	return o.buyer
}

// Supplier returns the supplier wallet.
func (o *Order) Supplier() kernel.Wallet {
	return o.supplier
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Metadata returns the typed metadata parsed at load time.
func (o *Order) Metadata() Metadata {
	return o.metadata
}

// ChangeStatus transitions the order to next, enforcing the monotonic
// forward rule. Identical replays are no-ops.
func (o *Order) ChangeStatus(next Status) error {
	if err := o.status.CanTransitionTo(next); err != nil {
		return err
	}

	o.status = next
	return nil
}
