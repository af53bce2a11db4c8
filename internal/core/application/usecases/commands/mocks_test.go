package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"deliveryoracle/internal/core/application/usecases/commands"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/core/domain/model/product"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) UpdateStatus(
	ctx context.Context, id kernel.UUID, status shipment.Status,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetOverdue(ctx context.Context, asOf time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context, id kernel.UUID, status order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(
	ctx context.Context, owner kernel.Wallet, skuID string,
) (*product.Product, error) {
	args := m.Called(ctx, owner, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(
	ctx context.Context, owner kernel.Wallet, skuID string, delta int,
) (*product.Product, error) {
	args := m.Called(ctx, owner, skuID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockInventoryPolicyRepository struct{ mock.Mock }

func (m *MockInventoryPolicyRepository) Get(
	ctx context.Context, buyer kernel.Wallet, skuID string,
) (*product.InventoryPolicy, error) {
	args := m.Called(ctx, buyer, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.InventoryPolicy), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) InventoryPolicyRepository() ports.InventoryPolicyRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryPolicyRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockLedgerClient struct{ mock.Mock }

func (m *MockLedgerClient) ConfirmPickup(
	ctx context.Context, confirmation ports.PickupConfirmation,
) (string, error) {
	args := m.Called(ctx, confirmation)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerClient) ConfirmDrop(
	ctx context.Context, confirmation ports.DropConfirmation,
) (string, error) {
	args := m.Called(ctx, confirmation)
	return args.String(0), args.Error(1)
}

type MockKnowledgeRecorder struct{ mock.Mock }

func (m *MockKnowledgeRecorder) UpsertFact(
	ctx context.Context, kind string, keys []string, value any, ts time.Time,
) error {
	args := m.Called(ctx, kind, keys, value, ts)
	return args.Error(0)
}

func (m *MockKnowledgeRecorder) RecordEvent(
	ctx context.Context, kind string, keys []string, value any, ts time.Time,
) error {
	args := m.Called(ctx, kind, keys, value, ts)
	return args.Error(0)
}

type MockReorderPolicyChecker struct{ mock.Mock }

func (m *MockReorderPolicyChecker) Recheck(
	ctx context.Context, buyer kernel.Wallet, skuID string, supplier kernel.Wallet,
) error {
	args := m.Called(ctx, buyer, skuID, supplier)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testWallet(t *testing.T, raw string) kernel.Wallet {
	t.Helper()
	wallet, err := kernel.NewWallet(raw)
	require.NoError(t, err)
	return wallet
}

func testPoint(t *testing.T, lat, lon float64) *kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return &point
}
