package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"deliveryoracle/internal/adapters/out/postgres/orderrepo"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/order"
	"deliveryoracle/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedOrder inserts a row directly; order rows are owned by the intake
// flow, not this repository.
func (suite *OrderRepositoryIntegrationTestSuite) seedOrder(status string, metadata string) kernel.UUID {
	id := kernel.NewUUID()
	dto := orderrepo.OrderDTO{
		ID:             id.Bytes(),
		BuyerWallet:    "0xbuyer",
		SupplierWallet: "0xsupplier",
		Status:         status,
		Metadata:       metadata,
		Version:        1,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ParsesMetadata() {
	ctx := context.Background()
	id := suite.seedOrder("Shipped",
		`{"chainOrderId":"0x2a","items":[{"skuId":"SKU-1","qty":4}],"dropMetadataUri":"ipfs://proof"}`)

	loaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(id))
	suite.Equal("0xbuyer", loaded.Buyer().String())
	suite.Equal("0xsupplier", loaded.Supplier().String())
	suite.Equal(order.StatusShipped, loaded.Status())
	suite.Equal("0x2a", loaded.Metadata().ChainOrderID)
	suite.Equal("ipfs://proof", loaded.Metadata().DropMetadataURI)
	suite.Require().Len(loaded.Metadata().Items, 1)
	suite.Equal("SKU-1", loaded.Metadata().Items[0].SkuID)
	suite.Equal(4, loaded.Metadata().Items[0].Qty)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_MalformedMetadataIsTolerated() {
	ctx := context.Background()
	id := suite.seedOrder("Funded", `{not json`)

	loaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(order.Metadata{}, loaded.Metadata())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StampsTimestampAndVersion() {
	ctx := context.Background()
	id := suite.seedOrder("Shipped", "")

	suite.tracker.On("TrackAggregate", id, mock.Anything).Once()

	updated, err := suite.repository.UpdateStatus(ctx, id, order.StatusDelivered)
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, updated.Status())

	var dto orderrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", id.Bytes()).Error)
	suite.Equal("Delivered", dto.Status)
	suite.Equal(2, dto.Version)
	suite.Require().NotNil(dto.CompletedAt)
	suite.WithinDuration(time.Now(), *dto.CompletedAt, time.Minute)
	suite.Nil(dto.CancelledAt)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_TerminalOrderRejectsAdvance() {
	ctx := context.Background()
	id := suite.seedOrder("Cancelled", "")

	_, err := suite.repository.UpdateStatus(ctx, id, order.StatusDelivered)
	suite.Require().Error(err)

	var dto orderrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", id.Bytes()).Error)
	suite.Equal("Cancelled", dto.Status)
	suite.Equal(1, dto.Version)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_UnknownID_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.UpdateStatus(ctx, kernel.NewUUID(), order.StatusDelivered)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
