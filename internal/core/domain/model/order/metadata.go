package order

import (
	"encoding/json"
	"strings"
)

// LineItem is a single sku/quantity pair from an order's metadata.
type LineItem struct {
	SkuID string `json:"skuId"`
	Qty   int    `json:"qty"`
}

// IsValid reports whether the line item can participate in inventory
// reconciliation: a non-blank sku and a positive quantity.
func (li LineItem) IsValid() bool {
	return strings.TrimSpace(li.SkuID) != "" && li.Qty > 0
}

// Metadata is the typed view of an order's free-form metadata blob.
// It is parsed once at the persistence boundary; call sites never touch
// the raw JSON.
type Metadata struct {
	// ChainOrderID is the order's identifier as known to the on-chain
	// contract, as a decimal or 0x-prefixed hex string. Empty when the
	// order has not been registered on-chain.
	ChainOrderID string `json:"chainOrderId,omitempty"`

	// Items lists the line items shipped under this order.
	Items []LineItem `json:"items,omitempty"`

	// DropMetadataURI optionally points at off-chain drop evidence
	// (photos, signatures) passed through to the drop confirmation.
	DropMetadataURI string `json:"dropMetadataUri,omitempty"`
}

// ParseMetadata decodes a raw metadata blob into its typed form.
// Malformed or empty input yields empty metadata rather than an error:
// a corrupt blob must not block milestone processing, it only loses the
// optional fields it carried.
func ParseMetadata(raw string) Metadata {
	if strings.TrimSpace(raw) == "" {
		return Metadata{}
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return Metadata{}
	}
	return meta
}

// LineItemsJSON returns the compact list representation of the line
// items as submitted with a drop confirmation, or "[]" when none exist.
func (m Metadata) LineItemsJSON() string {
	if len(m.Items) == 0 {
		return "[]"
	}

	encoded, err := json.Marshal(m.Items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
