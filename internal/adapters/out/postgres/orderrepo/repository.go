package orderrepo

import (
	"context"
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// The oracle never inserts orders; rows are owned by the order intake
// flow and only read and status-advanced here.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves an order by ID with its metadata parsed.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus transitions the order to the given status and stamps the
// matching timestamp column. The transition runs through the
// aggregate's state machine first, so stale updates against terminal
// orders are rejected before any row is touched.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	status order.Status,
) (*order.Order, error) {
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
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}
