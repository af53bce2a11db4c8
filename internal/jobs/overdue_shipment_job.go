package jobs

import (
	"context"
	"log/slog"
	"time"

	"deliveryoracle/internal/core/application/usecases/queries"
	"deliveryoracle/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OverdueShipmentJob scans every minute for InTransit shipments whose
// due-by deadline has passed. Each hit is logged and recorded as a
// knowledge event; the job never mutates shipment state, chasing an
// overdue courier is an operator concern.
type OverdueShipmentJob struct {
	handler   queries.GetOverdueShipmentsQueryHandler
	knowledge ports.KnowledgeGraphRecorder
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

// NewOverdueShipmentJob creates the overdue scan job. The knowledge
// recorder is optional.
func NewOverdueShipmentJob(
	handler queries.GetOverdueShipmentsQueryHandler,
	knowledge ports.KnowledgeGraphRecorder,
	logger *slog.Logger,
) *OverdueShipmentJob {
	return &OverdueShipmentJob{
		handler:   handler,
		knowledge: knowledge,
		cron:      cron.New(),
		logger:    logger.With("component", "overdue_shipment_job"),
		now:       time.Now,
	}
}

// Start begins the overdue scan, running every minute.
func (j *OverdueShipmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.runScan)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue shipment job started (running every minute)")
	return nil
}

// Stop stops the overdue scan job.
func (j *OverdueShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue shipment job stopped")
}

func (j *OverdueShipmentJob) runScan() {
	ctx := context.Background()
	asOf := j.now()

	query, err := queries.NewGetOverdueShipmentsQuery(asOf)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue shipment scan failed", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue shipment scan failed", "error", err)
		return
	}

	for _, item := range overdue {
		j.logger.WarnContext(ctx, "Shipment overdue",
			slog.String("shipment_id", item.ID.String()),
			slog.String("order_id", item.OrderID.String()),
			slog.String("courier", item.CourierWallet),
			slog.Time("due_by", item.DueBy))

		if j.knowledge == nil {
			continue
		}

		keys := []string{item.BuyerWallet, item.ID.String()}
		if err := j.knowledge.RecordEvent(ctx, "shipment_overdue", keys, item.DueBy.UTC().Format(time.RFC3339), asOf); err != nil {
			j.logger.WarnContext(ctx, "Failed to record overdue event",
				slog.String("shipment_id", item.ID.String()),
				"error", err)
		}
	}
}
