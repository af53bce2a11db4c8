package commands_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"deliveryoracle/internal/core/application/usecases/commands"
	"deliveryoracle/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testShipmentHash = "0x1122222222222222222222222222222222222222222222222222222222222233"
	testLocationHash = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testSignature    = "0xdeadbeef"
)

func validAttestation() commands.AttestationFields {
	return commands.AttestationFields{
		ShipmentHash:      testShipmentHash,
		LocationHash:      testLocationHash,
		CourierSignature:  testSignature,
		SupplierSignature: "cafebabe",
		BuyerSignature:    "0102",
	}
}

func TestAttestationPayloadBuilder_BuildPickup(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()
	claimed := int64(1700000000)

	fields := validAttestation()
	fields.ClaimedTS = &claimed

	confirmation, err := builder.BuildPickup(fields, 42)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), confirmation.ChainOrderID)
	assert.Equal(t, claimed, confirmation.ClaimedTS)
	assert.Len(t, confirmation.ShipmentHash, 32)
	assert.Len(t, confirmation.LocationHash, 32)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, confirmation.CourierSig)
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, confirmation.SupplierSig)
}

func TestAttestationPayloadBuilder_BuildPickup_HexPrefixIsOptional(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()

	withPrefix := validAttestation()
	withoutPrefix := validAttestation()
	withoutPrefix.ShipmentHash = strings.TrimPrefix(withPrefix.ShipmentHash, "0x")

	a, err := builder.BuildPickup(withPrefix, 1)
	require.NoError(t, err)
	b, err := builder.BuildPickup(withoutPrefix, 1)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a.ShipmentHash, b.ShipmentHash))
}

func TestAttestationPayloadBuilder_BuildPickup_ClaimedTSDefaultsToNow(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()

	before := time.Now().Unix()
	confirmation, err := builder.BuildPickup(validAttestation(), 1)
	require.NoError(t, err)
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, confirmation.ClaimedTS, before)
	assert.LessOrEqual(t, confirmation.ClaimedTS, after)
}

func TestAttestationPayloadBuilder_BuildPickup_Invalid(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()

	tests := []struct {
		name   string
		mutate func(*commands.AttestationFields)
	}{
		{"missing shipment hash", func(f *commands.AttestationFields) { f.ShipmentHash = "" }},
		{"blank shipment hash", func(f *commands.AttestationFields) { f.ShipmentHash = "   " }},
		{"shipment hash too short", func(f *commands.AttestationFields) { f.ShipmentHash = "0xdeadbeef" }},
		{"shipment hash too long", func(f *commands.AttestationFields) {
			f.ShipmentHash = testLocationHash + "ff"
		}},
		{"shipment hash not hex", func(f *commands.AttestationFields) {
			f.ShipmentHash = strings.Repeat("zz", 32)
		}},
		{"missing location hash", func(f *commands.AttestationFields) { f.LocationHash = "" }},
		{"location hash wrong length", func(f *commands.AttestationFields) { f.LocationHash = "abcd" }},
		{"missing courier signature", func(f *commands.AttestationFields) { f.CourierSignature = "" }},
		{"courier signature not hex", func(f *commands.AttestationFields) { f.CourierSignature = "xyz" }},
		{"missing supplier signature", func(f *commands.AttestationFields) { f.SupplierSignature = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validAttestation()
			tt.mutate(&fields)

			_, err := builder.BuildPickup(fields, 1)
			require.Error(t, err)
		})
	}
}

func TestAttestationPayloadBuilder_BuildDrop(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()
	distance := 123.9

	fields := validAttestation()
	fields.DistanceMeters = &distance

	metadata := order.Metadata{
		Items:           []order.LineItem{{SkuID: "SKU-1", Qty: 3}},
		DropMetadataURI: "ipfs://evidence",
	}

	confirmation, err := builder.BuildDrop(fields, 7, 5000, metadata)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), confirmation.ChainOrderID)
	assert.Equal(t, uint64(123), confirmation.DistanceM)
	assert.Equal(t, []byte{0x01, 0x02}, confirmation.BuyerSig)
	assert.JSONEq(t, `[{"skuId":"SKU-1","qty":3}]`, confirmation.LineItemsJSON)
	assert.Equal(t, "ipfs://evidence", confirmation.MetadataURI)
}

func TestAttestationPayloadBuilder_BuildDrop_DistanceFallback(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()

	t.Run("fallback used when courier reported none", func(t *testing.T) {
		confirmation, err := builder.BuildDrop(validAttestation(), 1, 850.4, order.Metadata{})
		require.NoError(t, err)
		assert.Equal(t, uint64(850), confirmation.DistanceM)
	})

	t.Run("negative distance floored at zero", func(t *testing.T) {
		negative := -10.0
		fields := validAttestation()
		fields.DistanceMeters = &negative

		confirmation, err := builder.BuildDrop(fields, 1, 500, order.Metadata{})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), confirmation.DistanceM)
	})

	t.Run("no items yields empty list", func(t *testing.T) {
		confirmation, err := builder.BuildDrop(validAttestation(), 1, 0, order.Metadata{})
		require.NoError(t, err)
		assert.Equal(t, "[]", confirmation.LineItemsJSON)
	})
}

func TestAttestationPayloadBuilder_BuildDrop_RequiresBuyerSignature(t *testing.T) {
	builder := commands.NewAttestationPayloadBuilder()

	fields := validAttestation()
	fields.BuyerSignature = ""

	_, err := builder.BuildDrop(fields, 1, 0, order.Metadata{})
	require.Error(t, err)
}
