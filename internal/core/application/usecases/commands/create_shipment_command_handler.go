package commands

import (
	"context"
	"log/slog"
	"time"

	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/core/ports"
)

// CreateShipmentCommandHandler registers a new shipment in Created
// status and indexes it in the knowledge graph.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	knowledge  ports.KnowledgeGraphRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewCreateShipmentCommandHandler creates a handler for shipment
// registration. The knowledge recorder is optional.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	knowledge ports.KnowledgeGraphRecorder,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		knowledge:  knowledge,
		logger:     logger,
		now:        time.Now,
	}
}

// Handle persists the new shipment. The knowledge graph write is
// best-effort and never fails the registration.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.OrderID(),
		cmd.ShipmentNo(),
		cmd.Supplier(),
		cmd.Buyer(),
		cmd.Pickup(),
		cmd.Drop(),
		cmd.DueBy(),
	)
	if err != nil {
		return err
	}
	aggregate.AttachMetadata(cmd.MetadataRaw())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.knowledge != nil {
		keys := []string{cmd.Buyer().String(), cmd.Supplier().String(), cmd.ShipmentID().String()}
		if err := h.knowledge.UpsertFact(ctx, "shipment_status",
			keys, aggregate.Status().String(), h.now()); err != nil {
			h.logger.WarnContext(ctx, "knowledge fact upsert failed",
				slog.String("shipment_id", cmd.ShipmentID().String()),
				slog.Any("error", err))
		}
	}

	return nil
}
