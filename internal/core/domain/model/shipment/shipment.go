package shipment

import (
	"errors"
	"fmt"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment. This ensures all
// shipments are properly validated.
var ErrShipmentIsNotConstructed = errors.New(
	"Shipment must be created via NewShipment or RestoreShipment constructor")

// Shipment is the aggregate root for a physical consignment moving from
// a supplier to a buyer under a purchase order.
//
// Shipment maintains these invariants:
//   - Pickup and drop coordinates, once set, are immutable; only the
//     status and the assigned courier mutate after creation.
//   - Supplier and buyer wallets are stored in canonical lower-case form
//     (enforced by kernel.Wallet).
//   - Status transitions follow the monotonic forward machine in Status.
type Shipment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	shipmentNo  int
	supplier    kernel.Wallet
	buyer       kernel.Wallet
	pickup      *kernel.GeoPoint
	drop        *kernel.GeoPoint
	dueBy       time.Time
	status      Status
	courier     *kernel.Wallet
	metadataRaw string

	isConstructed bool
}

// NewShipment creates a Shipment in Created status.
// Pickup and drop coordinates are optional: shipments registered before
// route planning may carry none, and milestone processing reports the
// corresponding missing-coordinates outcome instead of failing here.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	shipmentNo int,
	supplier kernel.Wallet,
	buyer kernel.Wallet,
	pickup *kernel.GeoPoint,
	drop *kernel.GeoPoint,
	dueBy time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        StatusCreated,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setShipmentNo(shipmentNo),
		s.setParties(supplier, buyer),
		s.setCoordinates(pickup, drop),
		s.setDueBy(dueBy),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a Shipment from persistence, including
// its current status, assigned courier and raw metadata.
func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	shipmentNo int,
	supplier kernel.Wallet,
	buyer kernel.Wallet,
	pickup *kernel.GeoPoint,
	drop *kernel.GeoPoint,
	dueBy time.Time,
	status Status,
	courier *kernel.Wallet,
	metadataRaw string,
) (*Shipment, error) {
	s, err := NewShipment(id, orderID, shipmentNo, supplier, buyer, pickup, drop, dueBy)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if courier != nil {
		if err := courier.Validate(); err != nil {
			return nil, err
		}
	}

	s.status = status
	s.courier = courier
	s.metadataRaw = metadataRaw
	return s, nil
}

// Validate ensures the Shipment was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the purchase order this shipment fulfills.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// ShipmentNo returns the sequence number within the order.
func (s *Shipment) ShipmentNo() int {
	return s.shipmentNo
}

// Supplier returns the supplier wallet.
func (s *Shipment) Supplier() kernel.Wallet {
	return s.supplier
}

// Buyer returns the buyer wallet.
func (s *Shipment) Buyer() kernel.Wallet {
	return s.buyer
}

// Pickup returns the pickup coordinates, or nil when absent.
func (s *Shipment) Pickup() *kernel.GeoPoint {
	return s.pickup
}

// Drop returns the drop coordinates, or nil when absent.
func (s *Shipment) Drop() *kernel.GeoPoint {
	return s.drop
}

// DueBy returns the delivery deadline.
func (s *Shipment) DueBy() time.Time {
	return s.dueBy
}

// Status returns the current status of the shipment.
func (s *Shipment) Status() Status {
	return s.status
}

// Courier returns the assigned courier wallet, or nil if unassigned.
func (s *Shipment) Courier() *kernel.Wallet {
	return s.courier
}

// MetadataRaw returns the free-form metadata blob as stored.
func (s *Shipment) MetadataRaw() string {
	return s.metadataRaw
}

// ChangeStatus transitions the shipment to next, enforcing the
// monotonic forward machine. Identical replays are no-ops.
func (s *Shipment) ChangeStatus(next Status) error {
	if err := s.status.CanTransitionTo(next); err != nil {
		return err
	}

	s.status = next
	return nil
}

// AttachMetadata stores the free-form metadata blob supplied at
// registration. The blob is opaque to the aggregate.
func (s *Shipment) AttachMetadata(raw string) {
	s.metadataRaw = raw
}

// AssignCourier records the courier responsible for the shipment.
// Reassignment is allowed while the shipment is not terminal.
func (s *Shipment) AssignCourier(courier kernel.Wallet) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	if s.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("%s is not a valid status to assign a courier", s.status))
	}

	s.courier = &courier
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setShipmentNo(shipmentNo int) error {
	if shipmentNo <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment number", fmt.Errorf("%d is not greater than 0", shipmentNo))
	}
	s.shipmentNo = shipmentNo
	return nil
}

func (s *Shipment) setParties(supplier, buyer kernel.Wallet) error {
	if err := errors.Join(supplier.Validate(), buyer.Validate()); err != nil {
		return err
	}
	s.supplier = supplier
	s.buyer = buyer
	return nil
}

func (s *Shipment) setCoordinates(pickup, drop *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return err
		}
	}
	if drop != nil {
		if err := drop.Validate(); err != nil {
			return err
		}
	}
	s.pickup = pickup
	s.drop = drop
	return nil
}

func (s *Shipment) setDueBy(dueBy time.Time) error {
	if dueBy.IsZero() {
		return errs.NewValueIsRequiredError("due by")
	}
	s.dueBy = dueBy
	return nil
}
