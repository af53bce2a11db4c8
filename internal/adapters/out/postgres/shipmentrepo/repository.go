package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus transitions the shipment to the given status and stamps
// the matching timestamp column. The transition runs through the
// aggregate's state machine first, so regressions from terminal states
// are rejected before any row is touched; identical replays re-stamp
// the timestamp and bump the version but change nothing else.
func (r *GormShipmentRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	status shipment.Status,
) (*shipment.Shipment, error) {
	aggregate, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(status); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"status":  status.String(),
		"version": gorm.Expr("version + 1"),
	}
	if column, ok := status.TimestampColumn(); ok {
		updates[column] = time.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// GetOverdue retrieves all InTransit shipments with a due-by deadline
// before asOf, oldest first.
func (r *GormShipmentRepository) GetOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_by < ?", shipment.StatusInTransit.String(), asOf).
		Order("due_by").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		shipments = append(shipments, aggregate)
	}

	return shipments, nil
}
