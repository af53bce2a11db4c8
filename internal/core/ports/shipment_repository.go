package ports

import (
	"context"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates. The repository owns the shipment rows; milestone
// processing reads them and requests status updates but never mutates
// rows directly.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// UpdateStatus sets the shipment status and stamps the matching
	// status timestamp column (table-driven). Returns the refreshed
	// aggregate.
	UpdateStatus(ctx context.Context, id kernel.UUID, status shipment.Status) (*shipment.Shipment, error)

	// GetOverdue retrieves all InTransit shipments whose due-by
	// deadline lies before asOf.
	GetOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error)
}
