package productrepo

import (
	"context"
	"errors"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/product"
	"deliveryoracle/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Get retrieves the owner's stock row for a sku.
func (r *GormProductRepository) Get(
	ctx context.Context,
	owner kernel.Wallet,
	skuID string,
) (*product.Product, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	normalized := product.NormalizeSku(skuID)

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_wallet = ? AND sku_id = ?", owner.String(), normalized).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("sku_id", normalized)
	}
	if err != nil {
		return nil, err
	}

	return productToDomain(dto), nil
}

// AdjustStock applies a delta to the owner's on-hand stock, creating
// the row when absent. The resulting level is floored at zero: a credit
// never fails, and a debit larger than the on-hand level empties the
// row instead of going negative.
func (r *GormProductRepository) AdjustStock(
	ctx context.Context,
	owner kernel.Wallet,
	skuID string,
	delta int,
) (*product.Product, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	normalized := product.NormalizeSku(skuID)
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("sku_id")
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "owner_wallet = ? AND sku_id = ?", owner.String(), normalized).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		dto = ProductDTO{
			OwnerWallet: owner.String(),
			SkuID:       normalized,
			OnHand:      floorAtZero(delta),
			Active:      true,
			Version:     1,
		}
		if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return nil, err
		}
		return productToDomain(dto), nil
	}
	if err != nil {
		return nil, err
	}

	dto.OnHand = floorAtZero(dto.OnHand + delta)
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("owner_wallet = ? AND sku_id = ?", owner.String(), normalized).
		Updates(map[string]any{
			"on_hand": dto.OnHand,
			"version": dto.Version,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	return productToDomain(dto), nil
}

func floorAtZero(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

// GormInventoryPolicyRepository implements InventoryPolicyRepository
// using GORM. Policies are read-only to the oracle.
type GormInventoryPolicyRepository struct {
	db *gorm.DB
}

// NewGormInventoryPolicyRepository creates a new GORM policy repository.
func NewGormInventoryPolicyRepository(db *gorm.DB) *GormInventoryPolicyRepository {
	return &GormInventoryPolicyRepository{db: db}
}

// Get retrieves the buyer's reorder policy for a sku.
func (r *GormInventoryPolicyRepository) Get(
	ctx context.Context,
	buyer kernel.Wallet,
	skuID string,
) (*product.InventoryPolicy, error) {
	if err := buyer.Validate(); err != nil {
		return nil, err
	}
	normalized := product.NormalizeSku(skuID)

	var dto InventoryPolicyDTO
	err := r.db.WithContext(ctx).
		First(&dto, "buyer_wallet = ? AND sku_id = ?", buyer.String(), normalized).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("sku_id", normalized)
	}
	if err != nil {
		return nil, err
	}

	return policyToDomain(dto), nil
}
