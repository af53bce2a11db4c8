package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/product"
	"deliveryoracle/internal/core/ports"
	"deliveryoracle/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetInventoryStatusQueryHandler reads a buyer's stock row and reorder
// policy and produces the OK/REORDER verdict. It doubles as the
// reorder-policy recheck collaborator the inventory reconciler calls
// after crediting delivered stock.
type GetInventoryStatusQueryHandler struct {
	db        *gorm.DB
	knowledge ports.KnowledgeGraphRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewGetInventoryStatusQueryHandler creates a handler for inventory
// status queries. The knowledge recorder is optional; when present,
// each evaluation refreshes the inventory_status fact.
func NewGetInventoryStatusQueryHandler(
	db *gorm.DB,
	knowledge ports.KnowledgeGraphRecorder,
	logger *slog.Logger,
) GetInventoryStatusQueryHandler {
	return GetInventoryStatusQueryHandler{
		db:        db,
		knowledge: knowledge,
		logger:    logger,
		now:       time.Now,
	}
}

// Handle evaluates the stock position. Returns an ObjectNotFoundError
// when the owner has no stock row for the sku.
func (h GetInventoryStatusQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryStatusQuery,
) (GetInventoryStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetInventoryStatusQueryResponse{}, err
	}

	prod, err := h.readProduct(ctx, query.Owner().String(), query.SkuID())
	if err != nil {
		return GetInventoryStatusQueryResponse{}, err
	}

	policy := h.readPolicy(ctx, query.Owner().String(), query.SkuID())

	action, reason := product.Recommend(prod, policy)

	threshold := prod.MinThreshold
	if policy != nil && policy.ReorderThreshold > 0 {
		threshold = policy.ReorderThreshold
	}

	h.refreshFact(ctx, query.Owner().String(), query.SkuID(), action)

	return GetInventoryStatusQueryResponse{
		Owner:       prod.Owner,
		SkuID:       prod.SkuID,
		Name:        prod.Name,
		Unit:        prod.Unit,
		OnHand:      prod.OnHand,
		Threshold:   threshold,
		Recommended: action,
		Reason:      reason,
	}, nil
}

// Recheck re-evaluates the reorder policy after a stock change and logs
// a warning when the sku needs reordering. Satisfies the reconciler's
// policy checker contract.
func (h GetInventoryStatusQueryHandler) Recheck(
	ctx context.Context,
	buyer kernel.Wallet,
	skuID string,
	supplier kernel.Wallet,
) error {
	query, err := NewGetInventoryStatusQuery(buyer, skuID)
	if err != nil {
		return err
	}

	response, err := h.Handle(ctx, query)
	if err != nil {
		return err
	}

	if response.Recommended == product.ActionReorder {
		h.logger.WarnContext(ctx, "sku below reorder threshold",
			slog.String("buyer", buyer.String()),
			slog.String("sku_id", response.SkuID),
			slog.Int("on_hand", response.OnHand),
			slog.Int("threshold", response.Threshold),
			slog.String("supplier", supplier.String()))
	}
	return nil
}

func (h GetInventoryStatusQueryHandler) readProduct(
	ctx context.Context,
	owner, skuID string,
) (product.Product, error) {
	var prod product.Product
	var name, unit sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			owner_wallet,
			sku_id,
			name,
			unit,
			on_hand,
			min_threshold,
			target_stock,
			active,
			version
		FROM products
		WHERE owner_wallet = ? AND sku_id = ?
	`, owner, skuID).Row()

	err := row.Scan(
		&prod.Owner,
		&prod.SkuID,
		&name,
		&unit,
		&prod.OnHand,
		&prod.MinThreshold,
		&prod.TargetStock,
		&prod.Active,
		&prod.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, errs.NewObjectNotFoundError("sku_id", skuID)
	}
	if err != nil {
		return product.Product{}, err
	}

	prod.Name = name.String
	prod.Unit = unit.String
	return prod, nil
}

// readPolicy is tolerant: a missing or unreadable policy row means "no
// policy configured" and the product's own threshold applies.
func (h GetInventoryStatusQueryHandler) readPolicy(
	ctx context.Context,
	buyer, skuID string,
) *product.InventoryPolicy {
	var policy product.InventoryPolicy
	var currency, preferredSupplier sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			buyer_wallet,
			sku_id,
			reorder_threshold,
			target_quantity,
			min_reorder_qty,
			max_reorder_qty,
			max_unit_price,
			currency,
			preferred_supplier
		FROM inventory_policies
		WHERE buyer_wallet = ? AND sku_id = ?
	`, buyer, skuID).Row()

	err := row.Scan(
		&policy.Buyer,
		&policy.SkuID,
		&policy.ReorderThreshold,
		&policy.TargetQuantity,
		&policy.MinReorderQty,
		&policy.MaxReorderQty,
		&policy.MaxUnitPrice,
		&currency,
		&preferredSupplier,
	)
	if err != nil {
		return nil
	}

	policy.Currency = currency.String
	policy.PreferredSupplier = preferredSupplier.String
	return &policy
}

func (h GetInventoryStatusQueryHandler) refreshFact(
	ctx context.Context,
	owner, skuID string,
	action product.RecommendedAction,
) {
	if h.knowledge == nil {
		return
	}

	err := h.knowledge.UpsertFact(ctx, "inventory_status",
		[]string{owner, skuID}, string(action), h.now())
	if err != nil {
		h.logger.WarnContext(ctx, "knowledge fact upsert failed",
			slog.String("owner", owner),
			slog.String("sku_id", skuID),
			slog.Any("error", err))
	}
}
