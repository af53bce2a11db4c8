package ports

import (
	"context"
)

// PickupConfirmation is the validated, signature-backed payload for the
// on-chain pickup confirmation call. Construction and validation happen
// in the attestation builder before any network call is attempted.
type PickupConfirmation struct {
	ShipmentHash []byte
	ChainOrderID uint64
	LocationHash []byte
	ClaimedTS    int64
	CourierSig   []byte
	SupplierSig  []byte
}

// DropConfirmation is the validated payload for the on-chain drop
// confirmation call that triggers escrow settlement.
type DropConfirmation struct {
	ShipmentHash  []byte
	ChainOrderID  uint64
	LocationHash  []byte
	ClaimedTS     int64
	DistanceM     uint64
	CourierSig    []byte
	BuyerSig      []byte
	LineItemsJSON string
	MetadataURI   string
}

// LedgerClient is the binding to the on-chain shipment registry
// contract. Implementations own transaction signing, broadcast and
// latency bounds; both calls block for the round-trip and fail with an
// opaque error on any revert or transport failure.
//
// A returned error does not guarantee the transaction did not land:
// once submitted, the call cannot be cancelled, so callers must treat
// a failure as "unknown outcome, safe to retry the confirmation step
// only", never as "no funds moved".
type LedgerClient interface {
	// ConfirmPickup submits the pickup confirmation and returns the
	// ledger transaction reference.
	ConfirmPickup(ctx context.Context, confirmation PickupConfirmation) (string, error)

	// ConfirmDrop submits the drop confirmation and returns the ledger
	// transaction reference.
	ConfirmDrop(ctx context.Context, confirmation DropConfirmation) (string, error)
}
