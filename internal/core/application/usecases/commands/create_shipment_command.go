package commands

import (
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrDueByIsRequired = errors.New("due-by timestamp is required")
)

// CreateShipmentCommand represents a request to register a new shipment
// for an existing purchase order.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	orderID     kernel.UUID
	shipmentNo  int
	supplier    kernel.Wallet
	buyer       kernel.Wallet
	pickup      *kernel.GeoPoint
	drop        *kernel.GeoPoint
	dueBy       time.Time
	metadataRaw string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a shipment registration command.
// Pickup and drop coordinates are optional; milestones that need a
// missing coordinate are rejected at processing time instead.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	orderID kernel.UUID,
	shipmentNo int,
	supplier kernel.Wallet,
	buyer kernel.Wallet,
	pickup *kernel.GeoPoint,
	drop *kernel.GeoPoint,
	dueBy time.Time,
	metadataRaw string,
) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		pickup:      pickup,
		drop:        drop,
		metadataRaw: metadataRaw,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setOrderID(orderID),
		command.setShipmentNo(shipmentNo),
		command.setParties(supplier, buyer),
		command.setDueBy(dueBy),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the purchase order the shipment fulfils.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipmentNo returns the shipment sequence number within its order.
func (c CreateShipmentCommand) ShipmentNo() int {
	return c.shipmentNo
}

// Supplier returns the supplier wallet.
func (c CreateShipmentCommand) Supplier() kernel.Wallet {
	return c.supplier
}

// Buyer returns the buyer wallet.
func (c CreateShipmentCommand) Buyer() kernel.Wallet {
	return c.buyer
}

// Pickup returns the pickup coordinate, or nil when unset.
func (c CreateShipmentCommand) Pickup() *kernel.GeoPoint {
	return c.pickup
}

// Drop returns the drop coordinate, or nil when unset.
func (c CreateShipmentCommand) Drop() *kernel.GeoPoint {
	return c.drop
}

// DueBy returns the delivery deadline.
func (c CreateShipmentCommand) DueBy() time.Time {
	return c.dueBy
}

// MetadataRaw returns the free-form shipment metadata blob.
func (c CreateShipmentCommand) MetadataRaw() string {
	return c.metadataRaw
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setShipmentNo(shipmentNo int) error {
	if shipmentNo <= 0 {
		return ErrShipmentNoIsInvalid
	}

	c.shipmentNo = shipmentNo
	return nil
}

func (c *CreateShipmentCommand) setParties(supplier, buyer kernel.Wallet) error {
	if err := errors.Join(supplier.Validate(), buyer.Validate()); err != nil {
		return err
	}

	c.supplier = supplier
	c.buyer = buyer
	return nil
}

func (c *CreateShipmentCommand) setDueBy(dueBy time.Time) error {
	if dueBy.IsZero() {
		return ErrDueByIsRequired
	}

	c.dueBy = dueBy
	return nil
}
