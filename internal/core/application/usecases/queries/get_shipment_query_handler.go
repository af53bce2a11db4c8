package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a shipment's tracking view straight
// from the shipments table.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment lookups.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when the
// shipment does not exist.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var id, orderID uuid.UUID
	var shipmentNo int
	var status string
	var courierWallet sql.NullString
	var dueBy time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			shipment_no,
			status,
			courier_wallet,
			due_by
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Row()

	err := row.Scan(&id, &orderID, &shipmentNo, &status, &courierWallet, &dueBy)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{},
			errs.NewObjectNotFoundError("shipment_id", query.ShipmentID())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	shipmentOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return GetShipmentQueryResponse{
		ID:            shipmentID,
		OrderID:       shipmentOrderID,
		ShipmentNo:    shipmentNo,
		Status:        status,
		CourierWallet: courierWallet.String,
		DueBy:         dueBy,
	}, nil
}
