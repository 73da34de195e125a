package postgres_test

import (
	"context"
	"testing"
	"time"

	adapter "foodorders/internal/adapters/out/postgres"
	"foodorders/internal/adapters/out/postgres/pgtest"
	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	sequence  int64
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	item, err := order.NewItem("product-03", "Refresco", 3, kernel.MoneyFromInt(5))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
		CustomerID: kernel.NewUUID(),
		BusinessID: kernel.NewUUID(),
		Items:      []order.Item{item},
		Total:      kernel.MoneyFromInt(15),
	}, time.Now())
	suite.Require().NoError(err)
	suite.sequence++
	suite.Require().NoError(o.AssignSequence(suite.sequence))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.RatingRepository())
	suite.NotNil(uow1.CourierRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit only reports")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	o := suite.newOrder()
	r, err := rating.RestoreRating(o.ID(), o.CustomerID(), 5, "", time.Now())
	suite.Require().NoError(err)
	c, err := courier.NewCourier(kernel.NewUUID(), o.ID(),
		kernel.MustNewLocation(19.4326, -99.1332), kernel.MustNewLocation(19.4361, -99.1362), time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.RatingRepository().Add(ctx, r))
	suite.Require().NoError(uow.CourierRepository().Save(ctx, c))

	got, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "writes are visible inside the transaction")
	suite.True(got.ID().IsEqual(o.ID()))

	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = fresh.RatingRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = fresh.CourierRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
