package commands_test

import (
	"errors"
	"testing"

	"deliveryoracle/internal/core/application/usecases/commands"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reconcilerOrder(t *testing.T, items []order.LineItem) *order.Order {
	t.Helper()
	ord, err := order.RestoreOrder(
		kernel.NewUUID(),
		testWallet(t, "0xbuyer"),
		testWallet(t, "0xsupplier"),
		order.StatusDelivered,
		order.Metadata{Items: items},
	)
	require.NoError(t, err)
	return ord
}

func TestInventoryReconciler_CreditsEachValidItem(t *testing.T) {
	ctx := t.Context()
	ord := reconcilerOrder(t, []order.LineItem{
		{SkuID: "SKU-1", Qty: 4},
		{SkuID: "SKU-2", Qty: 2},
	})

	factory := &MockUoWFactory{}
	productRepo := &MockProductRepository{}

	for _, item := range ord.Metadata().Items {
		uow := expectUoW(ctx, factory)
		uow.On("ProductRepository").Return(productRepo).Once()
		productRepo.On("AdjustStock", ctx, ord.Buyer(), item.SkuID, item.Qty).
			Return(&product.Product{SkuID: item.SkuID, OnHand: item.Qty}, nil).Once()
	}

	policy := &MockReorderPolicyChecker{}
	policy.On("Recheck", ctx, ord.Buyer(), "SKU-1", ord.Supplier()).Return(nil).Once()
	policy.On("Recheck", ctx, ord.Buyer(), "SKU-2", ord.Supplier()).Return(nil).Once()

	reconciler := commands.NewInventoryReconciler(factory, policy, testLogger())
	credited := reconciler.Reconcile(ctx, ord)

	assert.Equal(t, 2, credited)
	factory.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	policy.AssertExpectations(t)
}

func TestInventoryReconciler_SkipsInvalidItems(t *testing.T) {
	ctx := t.Context()
	ord := reconcilerOrder(t, []order.LineItem{
		{SkuID: "", Qty: 4},
		{SkuID: "SKU-1", Qty: 0},
		{SkuID: "SKU-2", Qty: -1},
	})

	factory := &MockUoWFactory{}
	reconciler := commands.NewInventoryReconciler(factory, nil, testLogger())

	credited := reconciler.Reconcile(ctx, ord)

	assert.Zero(t, credited)
	factory.AssertNotCalled(t, "Create")
}

func TestInventoryReconciler_ContinuesAfterItemFailure(t *testing.T) {
	ctx := t.Context()
	ord := reconcilerOrder(t, []order.LineItem{
		{SkuID: "SKU-1", Qty: 4},
		{SkuID: "SKU-2", Qty: 2},
	})

	factory := &MockUoWFactory{}
	productRepo := &MockProductRepository{}

	// First item fails inside its own transaction.
	failingUoW := &MockUoW{}
	failingUoW.On("Begin", ctx).Return(nil).Once()
	failingUoW.On("Rollback", ctx).Return(nil).Once()
	failingUoW.On("ProductRepository").Return(productRepo).Once()
	factory.On("Create").Return(failingUoW).Once()
	productRepo.On("AdjustStock", ctx, ord.Buyer(), "SKU-1", 4).
		Return(nil, errors.New("deadlock detected")).Once()

	// Second item still commits.
	uow := expectUoW(ctx, factory)
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("AdjustStock", ctx, ord.Buyer(), "SKU-2", 2).
		Return(&product.Product{SkuID: "sku2", OnHand: 2}, nil).Once()

	reconciler := commands.NewInventoryReconciler(factory, nil, testLogger())
	credited := reconciler.Reconcile(ctx, ord)

	assert.Equal(t, 1, credited)
	factory.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	failingUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestInventoryReconciler_PolicyFailureDoesNotAffectCredits(t *testing.T) {
	ctx := t.Context()
	ord := reconcilerOrder(t, []order.LineItem{{SkuID: "SKU-1", Qty: 4}})

	factory := &MockUoWFactory{}
	productRepo := &MockProductRepository{}

	uow := expectUoW(ctx, factory)
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("AdjustStock", ctx, ord.Buyer(), "SKU-1", 4).
		Return(&product.Product{SkuID: "sku1", OnHand: 4}, nil).Once()

	policy := &MockReorderPolicyChecker{}
	policy.On("Recheck", ctx, ord.Buyer(), "SKU-1", ord.Supplier()).
		Return(errors.New("policy store unavailable")).Once()

	reconciler := commands.NewInventoryReconciler(factory, policy, testLogger())
	credited := reconciler.Reconcile(ctx, ord)

	assert.Equal(t, 1, credited)
	policy.AssertExpectations(t)
}
