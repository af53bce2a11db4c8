package cmd

import (
	"log/slog"

	adapterhttp "deliveryoracle/internal/adapters/in/http"
	"deliveryoracle/internal/adapters/out/ledgerbridge"
	"deliveryoracle/internal/adapters/out/postgres"
	"deliveryoracle/internal/core/application/usecases/commands"
	"deliveryoracle/internal/core/application/usecases/queries"
	"deliveryoracle/internal/core/ports"
	"deliveryoracle/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	ledger     ports.LedgerClient
	knowledge  ports.KnowledgeGraphRecorder
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	knowledge ports.KnowledgeGraphRecorder,
	logger *slog.Logger,
) (CompositionRoot, error) {
	ledger, err := ledgerbridge.NewClient(ledgerbridge.Config{
		BaseURL: config.LedgerBridgeBaseURL,
		APIKey:  config.LedgerBridgeAPIKey,
	}, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     ledger,
		knowledge:  knowledge,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateProcessMilestoneCommandHandler() commands.ProcessMilestoneCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	reconciler := commands.NewInventoryReconciler(
		f,
		c.CreateGetInventoryStatusQueryHandler(),
		c.logger,
	)

	return commands.NewProcessMilestoneCommandHandler(f, c.ledger, c.knowledge, reconciler, c.logger)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.knowledge, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryStatusQueryHandler() queries.GetInventoryStatusQueryHandler {
	return queries.NewGetInventoryStatusQueryHandler(c.gormDB, c.knowledge, c.logger)
}

func (c *CompositionRoot) CreateGetOverdueShipmentsQueryHandler() queries.GetOverdueShipmentsQueryHandler {
	return queries.NewGetOverdueShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateProcessMilestoneCommandHandler(),
		c.CreateCreateShipmentCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateGetInventoryStatusQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueShipmentsQueryHandler(), c.knowledge, c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
