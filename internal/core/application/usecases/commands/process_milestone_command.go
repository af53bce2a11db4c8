package commands

import (
	"errors"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/pkg/guard"
)

var (
	ErrProcessMilestoneCommandIsNotConstructed = errors.New(
		"ProcessMilestoneCommand must be created via NewProcessMilestoneCommand constructor",
	)
	ErrShipmentNoIsInvalid = errors.New("shipment number must be greater than 0")
	ErrMilestoneIsInvalid  = errors.New("milestone is invalid")
)

// AttestationFields carries the optional signature-backed material a
// courier submits alongside a milestone. All byte fields are
// hex-encoded strings as received on the wire; decoding and
// completeness checks happen in the attestation payload builder.
type AttestationFields struct {
	ShipmentHash      string
	LocationHash      string
	CourierSignature  string
	SupplierSignature string
	BuyerSignature    string
	ClaimedTS         *int64
	DistanceMeters    *float64
	ChainOrderID      string
}

// ProcessMilestoneCommand represents a courier-reported milestone for a
// shipment: pickup, transit progress, delivery or cancellation.
//
// Example:
//
//	cmd, err := NewProcessMilestoneCommand(
//	    shipmentID, 1, orderID,
//	    shipment.MilestonePickup, courierWallet,
//	    reported, 0, attestation,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid milestone data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type ProcessMilestoneCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	shipmentNo  int
	orderID     kernel.UUID
	milestone   shipment.Milestone
	courier     kernel.Wallet
	reported    *kernel.GeoPoint
	radiusM     float64
	attestation AttestationFields

	guard guard.ConstructorGuard
}

// NewProcessMilestoneCommand creates a milestone processing command.
// The reported position is optional (nil when the courier sent no
// coordinates); radiusM overrides the default geofence radius when
// positive. Returns an error if any required field fails validation.
func NewProcessMilestoneCommand(
	shipmentID kernel.UUID,
	shipmentNo int,
	orderID kernel.UUID,
	milestone shipment.Milestone,
	courier kernel.Wallet,
	reported *kernel.GeoPoint,
	radiusM float64,
	attestation AttestationFields,
) (ProcessMilestoneCommand, error) {
	command := ProcessMilestoneCommand{
		reported:    reported,
		radiusM:     radiusM,
		attestation: attestation,

		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setShipmentNo(shipmentNo),
		command.setOrderID(orderID),
		command.setMilestone(milestone),
		command.setCourier(courier),
	); err != nil {
		return ProcessMilestoneCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrProcessMilestoneCommandIsNotConstructed)
}

// ShipmentID returns the shipment the milestone applies to.
func (c ProcessMilestoneCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ShipmentNo returns the shipment sequence number within its order.
func (c ProcessMilestoneCommand) ShipmentNo() int {
	return c.shipmentNo
}

// OrderID returns the purchase order the shipment belongs to.
func (c ProcessMilestoneCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Milestone returns the reported milestone kind.
func (c ProcessMilestoneCommand) Milestone() shipment.Milestone {
	return c.milestone
}

// Courier returns the reporting courier's wallet.
func (c ProcessMilestoneCommand) Courier() kernel.Wallet {
	return c.courier
}

// Reported returns the courier's reported position, or nil when the
// request carried no coordinates.
func (c ProcessMilestoneCommand) Reported() *kernel.GeoPoint {
	return c.reported
}

// RadiusM returns the caller-supplied geofence radius override.
// Non-positive means "use the default".
func (c ProcessMilestoneCommand) RadiusM() float64 {
	return c.radiusM
}

// Attestation returns the optional signature material for on-chain
// confirmation calls.
func (c ProcessMilestoneCommand) Attestation() AttestationFields {
	return c.attestation
}

func (c *ProcessMilestoneCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ProcessMilestoneCommand) setShipmentNo(shipmentNo int) error {
	if shipmentNo <= 0 {
		return ErrShipmentNoIsInvalid
	}

	c.shipmentNo = shipmentNo
	return nil
}

func (c *ProcessMilestoneCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessMilestoneCommand) setMilestone(milestone shipment.Milestone) error {
	if err := milestone.Validate(); err != nil {
		return ErrMilestoneIsInvalid
	}

	c.milestone = milestone
	return nil
}

func (c *ProcessMilestoneCommand) setCourier(courier kernel.Wallet) error {
	if err := courier.Validate(); err != nil {
		return err
	}

	c.courier = courier
	return nil
}
