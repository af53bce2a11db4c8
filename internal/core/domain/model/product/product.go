// Package product provides the inventory side of the domain model: the
// buyer's product stock rows and the reorder policies evaluated against
// them. Unlike the shipment and order aggregates these are thin,
// facade-owned records; the oracle only increments stock and reads
// policies, so plain structs keep the reconciliation path simple.
package product

import (
	"fmt"
	"strings"
)

// NormalizeSku canonicalizes a sku identifier for matching: lower-case
// with dashes, underscores and spaces removed. Lookups and stock rows
// both use the canonical form.
func NormalizeSku(skuID string) string {
	normalized := strings.ToLower(strings.TrimSpace(skuID))
	for _, cut := range []string{"-", "_", " "} {
		normalized = strings.ReplaceAll(normalized, cut, "")
	}
	return normalized
}

// Product is a buyer-owned stock record for a single sku.
type Product struct {
	Owner        string
	SkuID        string
	Name         string
	Unit         string
	OnHand       int
	MinThreshold int
	TargetStock  int
	Active       bool
	Version      int
}

// InventoryPolicy captures the buyer's reorder preferences for a sku.
// All bound fields are optional; zero values mean "not configured".
type InventoryPolicy struct {
	Buyer             string
	SkuID             string
	ReorderThreshold  int
	TargetQuantity    int
	MinReorderQty     int
	MaxReorderQty     int
	MaxUnitPrice      float64
	Currency          string
	PreferredSupplier string
}

// RecommendedAction is the outcome of a reorder policy evaluation.
type RecommendedAction string

const (
	// ActionOK means on-hand stock is above the reorder threshold.
	ActionOK RecommendedAction = "OK"
	// ActionReorder means stock has fallen to or below the threshold.
	ActionReorder RecommendedAction = "REORDER"
)

// Recommend evaluates the reorder policy against the product's on-hand
// level. The policy threshold wins when configured; the product's own
// minimum threshold is the fallback. Returns the action and a short
// human-readable reason.
func Recommend(p Product, policy *InventoryPolicy) (RecommendedAction, string) {
	threshold := p.MinThreshold
	source := "product minimum threshold"
	if policy != nil && policy.ReorderThreshold > 0 {
		threshold = policy.ReorderThreshold
		source = "reorder policy threshold"
	}

	if p.OnHand <= threshold {
		return ActionReorder, fmt.Sprintf(
			"on-hand %d at or below %s %d", p.OnHand, source, threshold)
	}
	return ActionOK, fmt.Sprintf(
		"on-hand %d above %s %d", p.OnHand, source, threshold)
}
