// Package shipmentrepo provides data transfer objects and mapping
// functions for shipment persistence. It implements the repository
// pattern for the shipment aggregate, handling conversion between
// domain entities and database rows.
package shipmentrepo

import (
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. Status timestamps are separate nullable columns stamped
// by the table-driven status→column rule.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ShipmentNo     int
	SupplierWallet string `gorm:"index"`
	BuyerWallet    string `gorm:"index"`
	PickupLat      *float64
	PickupLon      *float64
	DropLat        *float64
	DropLon        *float64
	DueBy          time.Time
	Status         string `gorm:"index"`
	CourierWallet  *string
	Metadata       string
	Version        int

	ReadyAt     *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:             aggregate.ID().Bytes(),
		OrderID:        aggregate.OrderID().Bytes(),
		ShipmentNo:     aggregate.ShipmentNo(),
		SupplierWallet: aggregate.Supplier().String(),
		BuyerWallet:    aggregate.Buyer().String(),
		DueBy:          aggregate.DueBy(),
		Status:         aggregate.Status().String(),
		Metadata:       aggregate.MetadataRaw(),
		Version:        1,
	}

	if pickup := aggregate.Pickup(); pickup != nil {
		lat, lon := pickup.Latitude(), pickup.Longitude()
		dto.PickupLat, dto.PickupLon = &lat, &lon
	}
	if drop := aggregate.Drop(); drop != nil {
		lat, lon := drop.Latitude(), drop.Longitude()
		dto.DropLat, dto.DropLon = &lat, &lon
	}
	if courier := aggregate.Courier(); courier != nil {
		value := courier.String()
		dto.CourierWallet = &value
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	supplier, err := kernel.NewWallet(dto.SupplierWallet)
	if err != nil {
		return nil, err
	}

	buyer, err := kernel.NewWallet(dto.BuyerWallet)
	if err != nil {
		return nil, err
	}

	pickup, err := pointFromColumns(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	drop, err := pointFromColumns(dto.DropLat, dto.DropLon)
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courier *kernel.Wallet
	if dto.CourierWallet != nil {
		wallet, walletErr := kernel.NewWallet(*dto.CourierWallet)
		if walletErr != nil {
			return nil, walletErr
		}
		courier = &wallet
	}

	return shipment.RestoreShipment(
		id, orderID, dto.ShipmentNo,
		supplier, buyer,
		pickup, drop,
		dto.DueBy, status, courier, dto.Metadata,
	)
}

// pointFromColumns requires both columns set; a half-set pair means a
// corrupt row and is rejected rather than guessed at.
func pointFromColumns(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, kernel.ErrGeoPointIsNotConstructed
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
