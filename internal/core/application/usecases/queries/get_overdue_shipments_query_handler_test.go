package queries_test

import (
	"context"
	"testing"
	"time"

	"deliveryoracle/internal/adapters/out/postgres/shipmentrepo"
	"deliveryoracle/internal/core/application/usecases/queries"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOverdueShipmentsQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOverdueShipmentsQueryHandler
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOverdueShipmentsQueryHandler(db)
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) addShipment(
	status shipment.Status,
	dueBy time.Time,
) *shipment.Shipment {
	supplier, err := kernel.NewWallet("0xsupplier")
	suite.Require().NoError(err)
	buyer, err := kernel.NewWallet("0xbuyer")
	suite.Require().NoError(err)
	courier, err := kernel.NewWallet("0xcourier")
	suite.Require().NoError(err)

	shp, err := shipment.RestoreShipment(
		kernel.NewUUID(), kernel.NewUUID(), 1, supplier, buyer,
		nil, nil, dueBy, status, &courier, "")
	suite.Require().NoError(err)

	err = suite.shipmentRepo.Add(context.Background(), shp)
	suite.Require().NoError(err)
	return shp
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOverdueShipmentsQuery(time.Now())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) TestHandle_ReturnsOnlyOverdueInTransit() {
	now := time.Now()

	overdue := suite.addShipment(shipment.StatusInTransit, now.Add(-2*time.Hour))
	suite.addShipment(shipment.StatusInTransit, now.Add(2*time.Hour))
	suite.addShipment(shipment.StatusDelivered, now.Add(-2*time.Hour))
	suite.addShipment(shipment.StatusCreated, now.Add(-2*time.Hour))

	query, err := queries.NewGetOverdueShipmentsQuery(now)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	suite.True(result[0].ID.IsEqual(overdue.ID()))
	suite.True(result[0].OrderID.IsEqual(overdue.OrderID()))
	suite.Equal("0xbuyer", result[0].BuyerWallet)
	suite.Equal("0xcourier", result[0].CourierWallet)
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) TestHandle_SortedByDeadline() {
	now := time.Now()

	later := suite.addShipment(shipment.StatusInTransit, now.Add(-1*time.Hour))
	earliest := suite.addShipment(shipment.StatusInTransit, now.Add(-72*time.Hour))
	middle := suite.addShipment(shipment.StatusInTransit, now.Add(-24*time.Hour))

	query, err := queries.NewGetOverdueShipmentsQuery(now)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.True(result[0].ID.IsEqual(earliest.ID()))
	suite.True(result[1].ID.IsEqual(middle.ID()))
	suite.True(result[2].ID.IsEqual(later.ID()))
}

func (suite *GetOverdueShipmentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOverdueShipmentsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOverdueShipmentsQuery constructor")
}

func TestGetOverdueShipmentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOverdueShipmentsQueryHandlerTestSuite))
}
