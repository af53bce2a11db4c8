package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/core/domain/services"
	"deliveryoracle/internal/core/ports"
	"deliveryoracle/internal/pkg/errs"
)

// ProcessMilestoneStatus is the overall outcome token of a milestone
// update. Domain outcomes are values of this type, never errors: a
// rejected geofence or a failed on-chain call is an expected condition
// the caller is told about, not a fault.
type ProcessMilestoneStatus string

const (
	MilestoneStatusOK                        ProcessMilestoneStatus = "ok"
	MilestoneStatusShipmentNotFound          ProcessMilestoneStatus = "shipment_not_found"
	MilestoneStatusMissingPickupCoordinates  ProcessMilestoneStatus = "missing_pickup_coordinates"
	MilestoneStatusMissingCourierCoordinates ProcessMilestoneStatus = "missing_courier_coordinates"
	MilestoneStatusMissingDropCoordinates    ProcessMilestoneStatus = "missing_drop_coordinates"
	MilestoneStatusOutsidePickupGeofence     ProcessMilestoneStatus = "outside_pickup_geofence"
	MilestoneStatusOutsideDropGeofence       ProcessMilestoneStatus = "outside_drop_geofence"
	MilestoneStatusOnchainPickupFailed       ProcessMilestoneStatus = "onchain_pickup_failed"
	MilestoneStatusOnchainDropFailed         ProcessMilestoneStatus = "onchain_drop_failed"
)

// ProcessMilestoneResult is the structured outcome of a milestone
// update. Distance and Radius are set only for geofence outcomes;
// ShipmentStatus and OrderStatus only on success.
type ProcessMilestoneResult struct {
	Status         ProcessMilestoneStatus
	EscrowTx       string
	Distance       *float64
	Radius         *float64
	ShipmentStatus string
	OrderStatus    string
}

// ProcessMilestoneCommandHandler orchestrates a milestone update end to
// end: geofence gate, shipment and order status transitions, knowledge
// graph indexing, on-chain confirmation and, on delivery, inventory
// reconciliation.
//
// The handler is fail-forward: each persisting step runs in its own
// unit of work, so a later step failing leaves earlier, already
// committed changes in place. In particular an on-chain failure after
// the status moved is reported as onchain_*_failed while the shipment
// stays in its new status; resubmitting the milestone is safe because
// the status transition is an idempotent no-op on repeat.
type ProcessMilestoneCommandHandler struct {
	uowFactory  UoWFactory
	geofence    services.GeofenceEvaluator
	chainOrders services.ChainOrderResolver
	attestation AttestationPayloadBuilder
	reconciler  *InventoryReconciler
	ledger      ports.LedgerClient
	knowledge   ports.KnowledgeGraphRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewProcessMilestoneCommandHandler creates the milestone orchestrator.
// The knowledge recorder is optional; pass nil to disable indexing.
func NewProcessMilestoneCommandHandler(
	uowFactory UoWFactory,
	ledger ports.LedgerClient,
	knowledge ports.KnowledgeGraphRecorder,
	reconciler *InventoryReconciler,
	logger *slog.Logger,
) ProcessMilestoneCommandHandler {
	return ProcessMilestoneCommandHandler{
		uowFactory:  uowFactory,
		geofence:    services.NewGeofenceEvaluator(),
		chainOrders: services.NewChainOrderResolver(),
		attestation: NewAttestationPayloadBuilder(),
		reconciler:  reconciler,
		ledger:      ledger,
		knowledge:   knowledge,
		logger:      logger,
		now:         time.Now,
	}
}

// Handle processes a courier-reported milestone.
// Domain outcomes (not found, geofence rejection, on-chain failure) are
// returned in the result with a nil error; only unexpected internal
// faults produce a non-nil error, logged with shipment, order and
// milestone context first.
func (h ProcessMilestoneCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
) (ProcessMilestoneResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessMilestoneResult{}, err
	}

	shp, err := h.loadShipment(ctx, cmd.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ProcessMilestoneResult{Status: MilestoneStatusShipmentNotFound}, nil
	}
	if err != nil {
		return ProcessMilestoneResult{}, h.internalFault(ctx, cmd, "load shipment", err)
	}

	if result, rejected := h.geofenceGate(shp, cmd); rejected {
		return result, nil
	}

	nextStatus, err := cmd.Milestone().ShipmentStatus()
	if err != nil {
		return ProcessMilestoneResult{}, err
	}

	shp, err = h.updateShipmentStatus(ctx, cmd.ShipmentID(), nextStatus)
	if err != nil {
		return ProcessMilestoneResult{}, h.internalFault(ctx, cmd, "update shipment status", err)
	}

	h.recordMilestone(ctx, shp, cmd)

	ord := h.advanceOrder(ctx, cmd)

	result := ProcessMilestoneResult{
		Status:         MilestoneStatusOK,
		ShipmentStatus: shp.Status().String(),
	}
	if ord != nil {
		result.OrderStatus = ord.Status().String()
	}

	switch cmd.Milestone() {
	case shipment.MilestonePickup:
		tx, ok := h.confirmPickup(ctx, cmd, ord)
		if !ok {
			return ProcessMilestoneResult{Status: MilestoneStatusOnchainPickupFailed}, nil
		}
		result.EscrowTx = tx

	case shipment.MilestoneDelivered:
		if ord != nil && h.reconciler != nil {
			h.reconciler.Reconcile(ctx, ord)
		}

		tx, ok := h.confirmDrop(ctx, cmd, shp, ord)
		if !ok {
			return ProcessMilestoneResult{Status: MilestoneStatusOnchainDropFailed}, nil
		}
		result.EscrowTx = tx
	}

	return result, nil
}

// geofenceGate applies the coordinate checks for milestones that carry
// one: Pickup against the pickup point, Delivered against the drop
// point. InTransit and Cancelled pass through unchecked.
func (h ProcessMilestoneCommandHandler) geofenceGate(
	shp *shipment.Shipment,
	cmd ProcessMilestoneCommand,
) (ProcessMilestoneResult, bool) {
	var reference *kernel.GeoPoint
	var missingReference, outside ProcessMilestoneStatus

	switch cmd.Milestone() {
	case shipment.MilestonePickup:
		reference = shp.Pickup()
		missingReference = MilestoneStatusMissingPickupCoordinates
		outside = MilestoneStatusOutsidePickupGeofence
	case shipment.MilestoneDelivered:
		reference = shp.Drop()
		missingReference = MilestoneStatusMissingDropCoordinates
		outside = MilestoneStatusOutsideDropGeofence
	default:
		return ProcessMilestoneResult{}, false
	}

	radius := h.geofence.EffectiveRadius(cmd.RadiusM())

	if reference == nil {
		return ProcessMilestoneResult{Status: missingReference}, true
	}
	if cmd.Reported() == nil {
		return ProcessMilestoneResult{Status: MilestoneStatusMissingCourierCoordinates}, true
	}

	evaluation := h.geofence.Evaluate(reference, cmd.Reported(), radius)
	if evaluation.Within {
		return ProcessMilestoneResult{}, false
	}

	result := ProcessMilestoneResult{
		Status: outside,
		Radius: &evaluation.Radius,
	}
	if evaluation.Finite {
		result.Distance = &evaluation.Distance
	}
	return result, true
}

func (h ProcessMilestoneCommandHandler) loadShipment(
	ctx context.Context,
	id kernel.UUID,
) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shp, err := uow.ShipmentRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return shp, nil
}

func (h ProcessMilestoneCommandHandler) updateShipmentStatus(
	ctx context.Context,
	id kernel.UUID,
	status shipment.Status,
) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shp, err := uow.ShipmentRepository().UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return shp, nil
}

// advanceOrder drives the order status from the milestone: Pickup and
// InTransit mark the order Shipped, Delivered marks it Delivered,
// Cancelled cancels it. Order-side failures (absent order, rejected
// transition on a stale update) are logged and tolerated; the milestone
// already moved the shipment, so the update proceeds without the order.
func (h ProcessMilestoneCommandHandler) advanceOrder(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
) *order.Order {
	//nolint:exhaustive // MilestoneUnknown never reaches here, cmd is validated
	targets := map[shipment.Milestone]order.Status{
		shipment.MilestonePickup:    order.StatusShipped,
		shipment.MilestoneInTransit: order.StatusShipped,
		shipment.MilestoneDelivered: order.StatusDelivered,
		shipment.MilestoneCancelled: order.StatusCancelled,
	}
	target := targets[cmd.Milestone()]

	ord, err := h.updateOrderStatus(ctx, cmd.OrderID(), target)
	if err == nil {
		return ord
	}

	h.logger.WarnContext(ctx, "order status update skipped",
		slog.String("order_id", cmd.OrderID().String()),
		slog.String("target_status", target.String()),
		slog.Any("error", err))

	ord, err = h.getOrder(ctx, cmd.OrderID())
	if err != nil {
		h.logger.WarnContext(ctx, "order unavailable for milestone",
			slog.String("order_id", cmd.OrderID().String()),
			slog.Any("error", err))
		return nil
	}
	return ord
}

func (h ProcessMilestoneCommandHandler) updateOrderStatus(
	ctx context.Context,
	id kernel.UUID,
	status order.Status,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ord, nil
}

func (h ProcessMilestoneCommandHandler) getOrder(
	ctx context.Context,
	id kernel.UUID,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ord, nil
}

// confirmPickup resolves the chain order id, builds the signed payload
// and submits the on-chain pickup confirmation. Any failure along the
// way is logged and reported as a single onchain failure outcome.
func (h ProcessMilestoneCommandHandler) confirmPickup(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
	ord *order.Order,
) (string, bool) {
	chainOrderID, resolved := h.resolveChainOrder(cmd, ord)
	if !resolved {
		h.logOnchainFailure(ctx, cmd, "pickup", errs.NewValueIsRequiredError("chain order id"))
		return "", false
	}

	confirmation, err := h.attestation.BuildPickup(cmd.Attestation(), chainOrderID)
	if err != nil {
		h.logOnchainFailure(ctx, cmd, "pickup", err)
		return "", false
	}

	tx, err := h.ledger.ConfirmPickup(ctx, confirmation)
	if err != nil {
		h.logOnchainFailure(ctx, cmd, "pickup", err)
		return "", false
	}
	return tx, true
}

// confirmDrop mirrors confirmPickup for the drop confirmation that
// settles the escrow. The fallback distance is the pickup-to-drop
// geodesic when the courier reported none and both points are known.
func (h ProcessMilestoneCommandHandler) confirmDrop(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
	shp *shipment.Shipment,
	ord *order.Order,
) (string, bool) {
	chainOrderID, resolved := h.resolveChainOrder(cmd, ord)
	if !resolved {
		h.logOnchainFailure(ctx, cmd, "drop", errs.NewValueIsRequiredError("chain order id"))
		return "", false
	}

	var metadata order.Metadata
	if ord != nil {
		metadata = ord.Metadata()
	}

	confirmation, err := h.attestation.BuildDrop(
		cmd.Attestation(), chainOrderID, h.fallbackDistance(shp), metadata)
	if err != nil {
		h.logOnchainFailure(ctx, cmd, "drop", err)
		return "", false
	}

	tx, err := h.ledger.ConfirmDrop(ctx, confirmation)
	if err != nil {
		h.logOnchainFailure(ctx, cmd, "drop", err)
		return "", false
	}
	return tx, true
}

func (h ProcessMilestoneCommandHandler) resolveChainOrder(
	cmd ProcessMilestoneCommand,
	ord *order.Order,
) (uint64, bool) {
	var metadata order.Metadata
	if ord != nil {
		metadata = ord.Metadata()
	}
	return h.chainOrders.Resolve(cmd.Attestation().ChainOrderID, metadata)
}

func (h ProcessMilestoneCommandHandler) fallbackDistance(shp *shipment.Shipment) float64 {
	if shp.Pickup() == nil || shp.Drop() == nil {
		return 0
	}

	distance, err := shp.Pickup().DistanceTo(*shp.Drop())
	if err != nil {
		return 0
	}
	return distance
}

// recordMilestone indexes the update in the knowledge graph.
// Best-effort: a lost index entry is preferable to failing a milestone
// that already moved physical state.
func (h ProcessMilestoneCommandHandler) recordMilestone(
	ctx context.Context,
	shp *shipment.Shipment,
	cmd ProcessMilestoneCommand,
) {
	if h.knowledge == nil {
		return
	}

	ts := h.now()
	keys := []string{shp.Buyer().String(), shp.Supplier().String(), shp.ID().String()}

	if err := h.knowledge.UpsertFact(ctx, "shipment_status", keys, shp.Status().String(), ts); err != nil {
		h.logger.WarnContext(ctx, "knowledge fact upsert failed",
			slog.String("shipment_id", shp.ID().String()),
			slog.Any("error", err))
	}

	if err := h.knowledge.RecordEvent(ctx, "shipment_milestone", keys, cmd.Milestone().String(), ts); err != nil {
		h.logger.WarnContext(ctx, "knowledge event record failed",
			slog.String("shipment_id", shp.ID().String()),
			slog.Any("error", err))
	}
}

func (h ProcessMilestoneCommandHandler) logOnchainFailure(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
	call string,
	err error,
) {
	h.logger.ErrorContext(ctx, "on-chain confirmation failed",
		slog.String("call", call),
		slog.String("shipment_id", cmd.ShipmentID().String()),
		slog.String("order_id", cmd.OrderID().String()),
		slog.String("milestone", cmd.Milestone().String()),
		slog.Any("error", err))
}

func (h ProcessMilestoneCommandHandler) internalFault(
	ctx context.Context,
	cmd ProcessMilestoneCommand,
	step string,
	err error,
) error {
	h.logger.ErrorContext(ctx, "milestone processing failed",
		slog.String("step", step),
		slog.String("shipment_id", cmd.ShipmentID().String()),
		slog.String("order_id", cmd.OrderID().String()),
		slog.String("milestone", cmd.Milestone().String()),
		slog.Any("error", err))
	return err
}
