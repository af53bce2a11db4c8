package ports

import (
	"context"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for buyer stock
// records. Sku matching is case-insensitive and tolerant of dashes and
// spaces, mirroring the facade's lookup rules.
type ProductRepository interface {
	// Get retrieves the owner's product row for a sku.
	// Returns an ObjectNotFoundError when absent.
	Get(ctx context.Context, owner kernel.Wallet, skuID string) (*product.Product, error)

	// AdjustStock applies a stock delta to the owner's sku, creating
	// the row if needed. The resulting on-hand value is floored at
	// zero; a negative on-hand value is never produced.
	AdjustStock(ctx context.Context, owner kernel.Wallet, skuID string, delta int) (*product.Product, error)
}

// InventoryPolicyRepository provides read access to the buyer's reorder
// policies.
type InventoryPolicyRepository interface {
	// Get retrieves the buyer's policy for a sku.
	// Returns an ObjectNotFoundError when none is configured.
	Get(ctx context.Context, buyer kernel.Wallet, skuID string) (*product.InventoryPolicy, error)
}
