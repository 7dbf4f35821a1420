package deliveryrepo_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type DeliveryTaskRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *deliveryrepo.GormDeliveryTaskRepository
}

func (suite *DeliveryTaskRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&deliveryrepo.TaskDTO{})
	suite.Require().NoError(err)

	suite.repo = deliveryrepo.NewGormDeliveryTaskRepository(db, noopTracker{})
}

func (suite *DeliveryTaskRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DeliveryTaskRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_tasks").Error
	suite.Require().NoError(err)
}

func (suite *DeliveryTaskRepositoryTestSuite) newPendingTask() *delivery.Task {
	zone, err := kernel.NewZone("yaba")
	suite.Require().NoError(err)

	task, err := delivery.NewTask(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		zone, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return task
}

func (suite *DeliveryTaskRepositoryTestSuite) TestAddAndGet_Roundtrip() {
	ctx := context.Background()
	task := suite.newPendingTask()

	err := suite.repo.Add(ctx, task)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(task.ID()))
	suite.True(loaded.OrderID().IsEqual(task.OrderID()))
	suite.Equal(delivery.Pending, loaded.Status())
	suite.Nil(loaded.RiderID())
}

func (suite *DeliveryTaskRepositoryTestSuite) TestClaim_AssignsPendingTask() {
	ctx := context.Background()
	task := suite.newPendingTask()
	suite.Require().NoError(suite.repo.Add(ctx, task))

	riderID := kernel.NewUUID()
	claimed, err := suite.repo.Claim(ctx, task.ID(), riderID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, claimed.Status())
	suite.Require().NotNil(claimed.RiderID())
	suite.True(claimed.RiderID().IsEqual(riderID))
	suite.NotNil(claimed.AssignedAt())
}

func (suite *DeliveryTaskRepositoryTestSuite) TestClaim_SecondClaimFails() {
	ctx := context.Background()
	task := suite.newPendingTask()
	suite.Require().NoError(suite.repo.Add(ctx, task))

	_, err := suite.repo.Claim(ctx, task.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.repo.Claim(ctx, task.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, delivery.ErrTaskAlreadyClaimed)
}

func (suite *DeliveryTaskRepositoryTestSuite) TestClaim_ConcurrentRace_ExactlyOneWins() {
	ctx := context.Background()
	task := suite.newPendingTask()
	suite.Require().NoError(suite.repo.Add(ctx, task))

	const riders = 8
	var winners atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for range riders {
		riderID := kernel.NewUUID()
		g.Go(func() error {
			_, err := suite.repo.Claim(gctx, task.ID(), riderID)
			if err == nil {
				winners.Add(1)
				return nil
			}
			if errors.Is(err, delivery.ErrTaskAlreadyClaimed) {
				return nil
			}
			return err
		})
	}
	suite.Require().NoError(g.Wait())
	suite.EqualValues(1, winners.Load())

	loaded, err := suite.repo.Get(ctx, task.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, loaded.Status())
}

func (suite *DeliveryTaskRepositoryTestSuite) TestClaim_MissingTask() {
	_, err := suite.repo.Claim(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryTaskRepositoryTestSuite) TestRemove_DeletesPendingTask() {
	ctx := context.Background()
	task := suite.newPendingTask()
	suite.Require().NoError(suite.repo.Add(ctx, task))

	suite.Require().NoError(suite.repo.Remove(ctx, task.ID()))

	_, err := suite.repo.Get(ctx, task.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryTaskRepositoryTestSuite) TestWeeklyDeliveryQueries() {
	ctx := context.Background()
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // Monday
	riderID := kernel.NewUUID()

	// Two deliveries inside the week for one rider.
	for range 2 {
		task := suite.newPendingTask()
		suite.Require().NoError(suite.repo.Add(ctx, task))

		claimed, err := suite.repo.Claim(ctx, task.ID(), riderID)
		suite.Require().NoError(err)

		at := weekStart.Add(48 * time.Hour)
		suite.Require().NoError(claimed.MarkPickedUp(riderID, at))
		suite.Require().NoError(claimed.MarkDelivered(riderID, at.Add(time.Hour)))
		suite.Require().NoError(suite.repo.Update(ctx, claimed))
	}

	// One delivery the week after; must not count.
	outside := suite.newPendingTask()
	suite.Require().NoError(suite.repo.Add(ctx, outside))
	claimed, err := suite.repo.Claim(ctx, outside.ID(), riderID)
	suite.Require().NoError(err)
	later := weekStart.AddDate(0, 0, 8)
	suite.Require().NoError(claimed.MarkPickedUp(riderID, later))
	suite.Require().NoError(claimed.MarkDelivered(riderID, later.Add(time.Hour)))
	suite.Require().NoError(suite.repo.Update(ctx, claimed))

	count, err := suite.repo.CountDeliveredByRiderInWeek(ctx, riderID, weekStart)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	riders, err := suite.repo.GetRidersWithDeliveriesInWeek(ctx, weekStart)
	suite.Require().NoError(err)
	suite.Require().Len(riders, 1)
	suite.True(riders[0].IsEqual(riderID))
}

func TestDeliveryTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryTaskRepositoryTestSuite))
}
