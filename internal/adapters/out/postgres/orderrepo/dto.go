// Package orderrepo provides data transfer objects and mapping
// functions for purchase order persistence. Metadata is stored as the
// raw JSON blob and parsed into its typed form exactly once, on the way
// out of the database.
package orderrepo

import (
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting purchase
// orders. Delivered and Resolved share the completed_at column.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerWallet    string    `gorm:"index"`
	SupplierWallet string    `gorm:"index"`
	Status         string    `gorm:"index"`
	Metadata       string
	Version        int

	ApprovedAt  *time.Time
	FundedAt    *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyer, err := kernel.NewWallet(dto.BuyerWallet)
	if err != nil {
		return nil, err
	}

	supplier, err := kernel.NewWallet(dto.SupplierWallet)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, buyer, supplier, status, order.ParseMetadata(dto.Metadata))
}
