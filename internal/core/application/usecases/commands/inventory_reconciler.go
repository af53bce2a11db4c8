package commands

import (
	"context"
	"log/slog"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
)

// ReorderPolicyChecker re-evaluates a buyer's reorder policy for a sku
// after its stock level changed. Implementations decide whether the new
// on-hand level still satisfies the policy and act on the outcome.
type ReorderPolicyChecker interface {
	Recheck(ctx context.Context, buyer kernel.Wallet, skuID string, supplier kernel.Wallet) error
}

// InventoryReconciler credits the buyer's stock for each delivered line
// item. Reconciliation is best-effort per item: a failing item is
// logged and skipped, never escalated, and each item commits in its own
// transaction so earlier credits survive a later failure.
type InventoryReconciler struct {
	uowFactory UoWFactory
	policy     ReorderPolicyChecker
	logger     *slog.Logger
}

// NewInventoryReconciler creates a reconciler. The policy checker is
// optional; pass nil to skip reorder rechecks.
func NewInventoryReconciler(
	uowFactory UoWFactory,
	policy ReorderPolicyChecker,
	logger *slog.Logger,
) *InventoryReconciler {
	return &InventoryReconciler{
		uowFactory: uowFactory,
		policy:     policy,
		logger:     logger,
	}
}

// Reconcile applies each valid line item of the order's metadata as a
// stock credit for the buyer. Items with a blank sku or non-positive
// quantity are skipped. Returns the number of items credited.
func (r *InventoryReconciler) Reconcile(ctx context.Context, ord *order.Order) int {
	credited := 0

	for _, item := range ord.Metadata().Items {
		if !item.IsValid() {
			r.logger.WarnContext(ctx, "skipping invalid line item",
				slog.String("order_id", ord.ID().String()),
				slog.String("sku_id", item.SkuID),
				slog.Int("qty", item.Qty))
			continue
		}

		if err := r.creditItem(ctx, ord.Buyer(), item); err != nil {
			r.logger.ErrorContext(ctx, "line item stock credit failed",
				slog.String("order_id", ord.ID().String()),
				slog.String("sku_id", item.SkuID),
				slog.Any("error", err))
			continue
		}
		credited++

		if r.policy == nil {
			continue
		}
		if err := r.policy.Recheck(ctx, ord.Buyer(), item.SkuID, ord.Supplier()); err != nil {
			r.logger.WarnContext(ctx, "reorder policy recheck failed",
				slog.String("order_id", ord.ID().String()),
				slog.String("sku_id", item.SkuID),
				slog.Any("error", err))
		}
	}

	return credited
}

func (r *InventoryReconciler) creditItem(ctx context.Context, buyer kernel.Wallet, item order.LineItem) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ProductRepository().AdjustStock(ctx, buyer, item.SkuID, item.Qty); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
