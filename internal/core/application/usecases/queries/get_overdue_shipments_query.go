package queries

import (
	"errors"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/pkg/guard"
)

var ErrGetOverdueShipmentsQueryIsNotConstructed = errors.New(
	"GetOverdueShipmentsQuery must be created via NewGetOverdueShipmentsQuery constructor",
)

// GetOverdueShipmentsQuery retrieves InTransit shipments whose due-by
// deadline has passed.
type GetOverdueShipmentsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueShipmentsQuery creates a query with asOf as the cutoff.
func NewGetOverdueShipmentsQuery(asOf time.Time) (GetOverdueShipmentsQuery, error) {
	if asOf.IsZero() {
		return GetOverdueShipmentsQuery{}, errors.New("as-of timestamp is required")
	}

	return GetOverdueShipmentsQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueShipmentsQueryIsNotConstructed)
}

// AsOf returns the overdue cutoff.
func (q GetOverdueShipmentsQuery) AsOf() time.Time {
	return q.asOf
}

// GetOverdueShipmentsQueryResponse identifies one overdue shipment and
// how to chase it.
type GetOverdueShipmentsQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	BuyerWallet   string
	CourierWallet string
	DueBy         time.Time
}
