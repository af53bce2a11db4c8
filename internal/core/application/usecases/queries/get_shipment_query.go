// Package queries contains read-only operations over the persistence
// facade. Query handlers bypass the aggregate layer and read the
// database directly, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves a single shipment's tracking view.
//
// Example:
//
//	query, err := NewGetShipmentQuery(shipmentID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for one shipment.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the shipment to look up.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentQueryResponse is the tracking view of a shipment: its
// lifecycle position and who is carrying it.
type GetShipmentQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	ShipmentNo    int
	Status        string
	CourierWallet string
	DueBy         time.Time
}
