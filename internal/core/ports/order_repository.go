package ports

import (
	"context"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for purchase orders.
// The oracle reads orders and drives their status from shipment
// milestones; order creation and approval belong to a separate flow.
type OrderRepository interface {
	// Get retrieves an order by its unique identifier, with metadata
	// parsed into its typed form. Returns an ObjectNotFoundError when
	// absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus sets the order status and stamps the matching
	// status timestamp column (table-driven; Delivered and Resolved
	// share the completion column). Returns the refreshed aggregate.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status) (*order.Order, error)
}
