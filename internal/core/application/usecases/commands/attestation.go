package commands

import (
	"encoding/hex"
	"strings"
	"time"

	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/core/ports"
	"deliveryoracle/internal/pkg/errs"
)

const attestationHashLen = 32

// AttestationPayloadBuilder assembles the signed payloads for on-chain
// confirmation calls. It is a pure validation step: every completeness
// and format check happens here, before any network call is attempted,
// so an incomplete payload never reaches the ledger client.
type AttestationPayloadBuilder struct {
	now func() time.Time
}

// NewAttestationPayloadBuilder creates a builder using wall-clock time
// for defaulted claim timestamps.
func NewAttestationPayloadBuilder() AttestationPayloadBuilder {
	return AttestationPayloadBuilder{now: time.Now}
}

// BuildPickup assembles the pickup confirmation payload.
// Requires shipment hash, location hash, courier and supplier
// signatures; the claimed timestamp defaults to the current time when
// the courier sent none.
func (b AttestationPayloadBuilder) BuildPickup(
	fields AttestationFields,
	chainOrderID uint64,
) (ports.PickupConfirmation, error) {
	shipmentHash, err := decodeHash("shipment hash", fields.ShipmentHash)
	if err != nil {
		return ports.PickupConfirmation{}, err
	}

	locationHash, err := decodeHash("location hash", fields.LocationHash)
	if err != nil {
		return ports.PickupConfirmation{}, err
	}

	courierSig, err := decodeSignature("courier signature", fields.CourierSignature)
	if err != nil {
		return ports.PickupConfirmation{}, err
	}

	supplierSig, err := decodeSignature("supplier signature", fields.SupplierSignature)
	if err != nil {
		return ports.PickupConfirmation{}, err
	}

	return ports.PickupConfirmation{
		ShipmentHash: shipmentHash,
		ChainOrderID: chainOrderID,
		LocationHash: locationHash,
		ClaimedTS:    b.claimedTS(fields),
		CourierSig:   courierSig,
		SupplierSig:  supplierSig,
	}, nil
}

// BuildDrop assembles the drop confirmation payload that triggers
// escrow settlement. Requires shipment hash, location hash, courier and
// buyer signatures. The distance defaults to fallbackDistanceM when the
// courier reported none; line items are serialized from the order
// metadata, and the drop metadata URI is passed through.
func (b AttestationPayloadBuilder) BuildDrop(
	fields AttestationFields,
	chainOrderID uint64,
	fallbackDistanceM float64,
	metadata order.Metadata,
) (ports.DropConfirmation, error) {
	shipmentHash, err := decodeHash("shipment hash", fields.ShipmentHash)
	if err != nil {
		return ports.DropConfirmation{}, err
	}

	locationHash, err := decodeHash("location hash", fields.LocationHash)
	if err != nil {
		return ports.DropConfirmation{}, err
	}

	courierSig, err := decodeSignature("courier signature", fields.CourierSignature)
	if err != nil {
		return ports.DropConfirmation{}, err
	}

	buyerSig, err := decodeSignature("buyer signature", fields.BuyerSignature)
	if err != nil {
		return ports.DropConfirmation{}, err
	}

	distanceM := fallbackDistanceM
	if fields.DistanceMeters != nil {
		distanceM = *fields.DistanceMeters
	}
	if distanceM < 0 {
		distanceM = 0
	}

	return ports.DropConfirmation{
		ShipmentHash:  shipmentHash,
		ChainOrderID:  chainOrderID,
		LocationHash:  locationHash,
		ClaimedTS:     b.claimedTS(fields),
		DistanceM:     uint64(distanceM),
		CourierSig:    courierSig,
		BuyerSig:      buyerSig,
		LineItemsJSON: metadata.LineItemsJSON(),
		MetadataURI:   metadata.DropMetadataURI,
	}, nil
}

func (b AttestationPayloadBuilder) claimedTS(fields AttestationFields) int64 {
	if fields.ClaimedTS != nil {
		return *fields.ClaimedTS
	}
	return b.now().Unix()
}

// decodeHash decodes a hex-encoded 32-byte digest, tolerating an
// optional 0x prefix.
func decodeHash(paramName, value string) ([]byte, error) {
	decoded, err := decodeHexField(paramName, value)
	if err != nil {
		return nil, err
	}
	if len(decoded) != attestationHashLen {
		return nil, errs.NewValueIsInvalidError(paramName)
	}
	return decoded, nil
}

func decodeSignature(paramName, value string) ([]byte, error) {
	return decodeHexField(paramName, value)
}

func decodeHexField(paramName, value string) ([]byte, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, errs.NewValueIsRequiredError(paramName)
	}

	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return decoded, nil
}
