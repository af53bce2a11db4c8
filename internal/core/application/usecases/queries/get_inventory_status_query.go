package queries

import (
	"errors"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/product"
	"deliveryoracle/internal/pkg/errs"
	"deliveryoracle/internal/pkg/guard"
)

var ErrGetInventoryStatusQueryIsNotConstructed = errors.New(
	"GetInventoryStatusQuery must be created via NewGetInventoryStatusQuery constructor",
)

// GetInventoryStatusQuery retrieves a buyer's stock position for one
// sku together with the reorder recommendation.
type GetInventoryStatusQuery struct {
	owner kernel.Wallet
	skuID string

	guard guard.ConstructorGuard
}

// NewGetInventoryStatusQuery creates an inventory status query.
// The sku is canonicalized for matching.
func NewGetInventoryStatusQuery(owner kernel.Wallet, skuID string) (GetInventoryStatusQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetInventoryStatusQuery{}, err
	}

	normalized := product.NormalizeSku(skuID)
	if normalized == "" {
		return GetInventoryStatusQuery{}, errs.NewValueIsRequiredError("sku id")
	}

	return GetInventoryStatusQuery{
		owner: owner,
		skuID: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInventoryStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryStatusQueryIsNotConstructed)
}

// Owner returns the stock-owning buyer wallet.
func (q GetInventoryStatusQuery) Owner() kernel.Wallet {
	return q.owner
}

// SkuID returns the canonical sku identifier.
func (q GetInventoryStatusQuery) SkuID() string {
	return q.skuID
}

// GetInventoryStatusQueryResponse is the stock position plus the
// reorder policy verdict for a single sku.
type GetInventoryStatusQueryResponse struct {
	Owner       string
	SkuID       string
	Name        string
	Unit        string
	OnHand      int
	Threshold   int
	Recommended product.RecommendedAction
	Reason      string
}
