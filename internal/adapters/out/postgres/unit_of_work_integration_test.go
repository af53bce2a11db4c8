package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "deliveryoracle/internal/adapters/out/postgres"
	"deliveryoracle/internal/adapters/out/postgres/orderrepo"
	"deliveryoracle/internal/adapters/out/postgres/productrepo"
	"deliveryoracle/internal/adapters/out/postgres/shipmentrepo"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&productrepo.InventoryPolicyDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, orders, products, inventory_policies").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func createTestShipment(suite *UnitOfWorkIntegrationTestSuite) *shipment.Shipment {
	supplier, err := kernel.NewWallet("0xsupplier")
	suite.Require().NoError(err)
	buyer, err := kernel.NewWallet("0xbuyer")
	suite.Require().NoError(err)

	shp, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), 1, supplier, buyer,
		nil, nil, time.Now().Add(48*time.Hour))
	suite.Require().NoError(err)
	return shp
}

func (suite *UnitOfWorkIntegrationTestSuite) seedOrder(status string) kernel.UUID {
	id := kernel.NewUUID()
	dto := orderrepo.OrderDTO{
		ID:             id.Bytes(),
		BuyerWallet:    "0xbuyer",
		SupplierWallet: "0xsupplier",
		Status:         status,
		Version:        1,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.ShipmentRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.ProductRepository())
	suite.NotNil(uow2.InventoryPolicyRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// A second Begin on an open transaction is a no-op.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)

	err = uow.Rollback(ctx)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsShipment() {
	ctx := context.Background()
	uow := suite.factory.Create()
	shp := createTestShipment(suite)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ShipmentRepository().Add(ctx, shp)
	suite.Require().NoError(err)

	// Visible within the transaction before commit.
	loaded, err := uow.ShipmentRepository().Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(shp.ID()))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	loaded, err = newUow.ShipmentRepository().Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(shp.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	shp := createTestShipment(suite)
	buyer, err := kernel.NewWallet("0xbuyer")
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ShipmentRepository().Add(ctx, shp)
	suite.Require().NoError(err)

	_, err = uow.ProductRepository().AdjustStock(ctx, buyer, "sku1", 5)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.ShipmentRepository().Get(ctx, shp.ID())
	suite.Require().Error(err)

	_, err = newUow.ProductRepository().Get(ctx, buyer, "sku1")
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMilestoneStep_UpdatesShipmentAndOrderAtomically() {
	ctx := context.Background()
	shp := createTestShipment(suite)
	orderID := suite.seedOrder("Funded")

	setupUow := suite.factory.Create()
	err := setupUow.ShipmentRepository().Add(ctx, shp)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	_, err = uow.ShipmentRepository().UpdateStatus(ctx, shp.ID(), shipment.StatusInTransit)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().UpdateStatus(ctx, orderID, order.StatusShipped)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	loadedShipment, err := newUow.ShipmentRepository().Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.StatusInTransit, loadedShipment.Status())

	loadedOrder, err := newUow.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.StatusShipped, loadedOrder.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoryIsolationBetweenTransactions() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	shipment1 := createTestShipment(suite)
	shipment2 := createTestShipment(suite)

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.ShipmentRepository().Add(ctx, shipment1)
	suite.Require().NoError(err)
	err = uow2.ShipmentRepository().Add(ctx, shipment2)
	suite.Require().NoError(err)

	// Each transaction only sees its own uncommitted rows.
	_, err = uow1.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().NoError(err)
	_, err = uow1.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().Error(err)

	_, err = uow2.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().NoError(err)
	_, err = uow2.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().Error(err)

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.ShipmentRepository().Get(ctx, shipment1.ID())
	suite.Require().NoError(err)
	_, err = newUow.ShipmentRepository().Get(ctx, shipment2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_AutoCommits() {
	ctx := context.Background()
	uow := suite.factory.Create()
	shp := createTestShipment(suite)

	err := uow.ShipmentRepository().Add(ctx, shp)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	loaded, err := newUow.ShipmentRepository().Get(ctx, shp.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(shp.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReconciliationStep_CreditsStockWithinTransaction() {
	ctx := context.Background()
	buyer, err := kernel.NewWallet("0xbuyer")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	adjusted, err := uow.ProductRepository().AdjustStock(ctx, buyer, "SKU-1", 4)
	suite.Require().NoError(err)
	suite.Equal(4, adjusted.OnHand)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	loaded, err := newUow.ProductRepository().Get(ctx, buyer, "sku1")
	suite.Require().NoError(err)
	suite.Equal(4, loaded.OnHand)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
