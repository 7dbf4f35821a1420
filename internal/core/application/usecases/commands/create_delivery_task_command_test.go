package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

func TestCreateDeliveryTaskCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	zone := testZone(t, "yaba")
	aggregate := orderInStatus(t, vendorID, kernel.NewUUID(), order.Accepted)
	riders := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	cmd, err := commands.NewCreateDeliveryTaskCommand(kernel.NewUUID(), aggregate.ID(), vendorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)
	notificationRepo := new(MockNotificationRepository)
	vendorDir := new(MockVendorDirectory)
	riderDir := new(MockRiderDirectory)

	var createdTask *delivery.Task

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryTaskRepository").Return(taskRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("VendorDirectory").Return(vendorDir)
	uow.On("RiderDirectory").Return(riderDir)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once()
	vendorDir.On("GetZone", mock.Anything, vendorID).Return(zone, nil).Once()
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Task")).
		Run(func(args mock.Arguments) {
			createdTask = args.Get(1).(*delivery.Task)
		}).Return(nil).Once()
	riderDir.On("GetAllInZone", mock.Anything, zone).Return(riders, nil).Once()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Run(func(args mock.Arguments) {
			ns := args.Get(1).([]*notification.Notification)
			assert.Len(t, ns, len(riders))
		}).Return(nil).Once()

	factory := new(MockCreateTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryTaskCommandHandler(factory, services.NewNotificationFanOut())
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, createdTask)
	assert.Equal(t, delivery.Pending, createdTask.Status())
	assert.True(t, createdTask.VendorLocation().IsEqual(zone))
	assert.Nil(t, createdTask.RiderID())
	uow.AssertExpectations(t)
}

func TestCreateDeliveryTaskCommandHandler_Handle_OrderNotAccepted(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	aggregate := orderInStatus(t, vendorID, kernel.NewUUID(), order.Paid)

	cmd, err := commands.NewCreateDeliveryTaskCommand(kernel.NewUUID(), aggregate.ID(), vendorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryTaskCommandHandler(factory, services.NewNotificationFanOut())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrOrderNotAccepted)
}

func TestCreateDeliveryTaskCommandHandler_Handle_PickupOrder(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), vendorID, kernel.NewUUID(), kernel.NewUUID(),
		1, testMoney(t, 2000), testMoney(t, 150),
		order.Accepted, "PAY-REF-2", testZone(t, "yaba"), order.TypeService,
	)
	require.NoError(t, err)

	cmd, err := commands.NewCreateDeliveryTaskCommand(kernel.NewUUID(), aggregate.ID(), vendorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryTaskCommandHandler(factory, services.NewNotificationFanOut())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrOrderNotDeliverable)
}

func TestCreateDeliveryTaskCommandHandler_Handle_TaskAlreadyExists(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	zone := testZone(t, "yaba")
	aggregate := orderInStatus(t, vendorID, kernel.NewUUID(), order.Accepted)
	existing := pendingTask(t, aggregate.ID(), vendorID, zone)

	cmd, err := commands.NewCreateDeliveryTaskCommand(kernel.NewUUID(), aggregate.ID(), vendorID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("DeliveryTaskRepository").Return(taskRepo).Once(),
		taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryTaskCommandHandler(factory, services.NewNotificationFanOut())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrTaskAlreadyExists)
}
