package queries

import (
	"context"
	"database/sql"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueShipmentsQueryHandler scans for InTransit shipments past
// their deadline. Used by the overdue monitor job.
type GetOverdueShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueShipmentsQueryHandler creates a handler for overdue
// shipment scans.
func NewGetOverdueShipmentsQueryHandler(db *gorm.DB) GetOverdueShipmentsQueryHandler {
	return GetOverdueShipmentsQueryHandler{db: db}
}

// Handle returns all InTransit shipments with due_by before the cutoff,
// oldest deadline first.
func (h GetOverdueShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueShipmentsQuery,
) ([]GetOverdueShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetOverdueShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			buyer_wallet,
			courier_wallet,
			due_by
		FROM shipments
		WHERE status = ? AND due_by < ?
		ORDER BY due_by
	`, shipment.StatusInTransit.String(), query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, orderID uuid.UUID
		var buyerWallet string
		var courierWallet sql.NullString
		var dueBy time.Time

		if err = rows.Scan(&id, &orderID, &buyerWallet, &courierWallet, &dueBy); err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		shipmentOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		shipments = append(shipments, GetOverdueShipmentsQueryResponse{
			ID:            shipmentID,
			OrderID:       shipmentOrderID,
			BuyerWallet:   buyerWallet,
			CourierWallet: courierWallet.String,
			DueBy:         dueBy,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
