// Package productrepo provides persistence for buyer stock rows and
// reorder policies. Both tables key on (wallet, sku) with the sku in
// canonical form, so lookups tolerate case, dash and space variations.
package productrepo

import (
	"deliveryoracle/internal/core/domain/model/product"
)

// ProductDTO represents the database structure for buyer stock rows.
type ProductDTO struct {
	OwnerWallet  string `gorm:"primaryKey"`
	SkuID        string `gorm:"primaryKey"`
	Name         string
	Unit         string
	OnHand       int
	MinThreshold int
	TargetStock  int
	Active       bool
	Version      int
}

// TableName specifies the database table name for stock rows.
func (ProductDTO) TableName() string {
	return "products"
}

// InventoryPolicyDTO represents the database structure for reorder
// policies.
type InventoryPolicyDTO struct {
	BuyerWallet       string `gorm:"primaryKey"`
	SkuID             string `gorm:"primaryKey"`
	ReorderThreshold  int
	TargetQuantity    int
	MinReorderQty     int
	MaxReorderQty     int
	MaxUnitPrice      float64
	Currency          string
	PreferredSupplier string
}

// TableName specifies the database table name for reorder policies.
func (InventoryPolicyDTO) TableName() string {
	return "inventory_policies"
}

func productToDomain(dto ProductDTO) *product.Product {
	return &product.Product{
		Owner:        dto.OwnerWallet,
		SkuID:        dto.SkuID,
		Name:         dto.Name,
		Unit:         dto.Unit,
		OnHand:       dto.OnHand,
		MinThreshold: dto.MinThreshold,
		TargetStock:  dto.TargetStock,
		Active:       dto.Active,
		Version:      dto.Version,
	}
}

func policyToDomain(dto InventoryPolicyDTO) *product.InventoryPolicy {
	return &product.InventoryPolicy{
		Buyer:             dto.BuyerWallet,
		SkuID:             dto.SkuID,
		ReorderThreshold:  dto.ReorderThreshold,
		TargetQuantity:    dto.TargetQuantity,
		MinReorderQty:     dto.MinReorderQty,
		MaxReorderQty:     dto.MaxReorderQty,
		MaxUnitPrice:      dto.MaxUnitPrice,
		Currency:          dto.Currency,
		PreferredSupplier: dto.PreferredSupplier,
	}
}
