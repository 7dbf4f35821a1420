package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

func TestCancelOrderCommandHandler_Handle_NoTask(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), userID, order.Paid)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)
	notificationRepo := new(MockNotificationRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryTaskRepository").Return(taskRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Return(nil).Once()

	factory := new(MockCancelOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewNotificationFanOut())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_WithdrawsPendingTask(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	aggregate := orderInStatus(t, vendorID, userID, order.Accepted)
	task := pendingTask(t, aggregate.ID(), vendorID, testZone(t, "yaba"))

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)
	notificationRepo := new(MockNotificationRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryTaskRepository").Return(taskRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(task, nil).Once()
	taskRepo.On("Remove", mock.Anything, task.ID()).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Return(nil).Once()

	factory := new(MockCancelOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewNotificationFanOut())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
	taskRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ClaimedTaskKeptOnCancel(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	aggregate := orderInStatus(t, vendorID, userID, order.Accepted)
	task := assignedTask(t, aggregate.ID(), vendorID, kernel.NewUUID(), testZone(t, "yaba"))

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)
	notificationRepo := new(MockNotificationRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryTaskRepository").Return(taskRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).Return(task, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Return(nil).Once()

	factory := new(MockCancelOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	// The claimed task keeps its row; the rider learns of the cancel when
	// the next progress report is refused.
	h := commands.NewCancelOrderCommandHandler(factory, services.NewNotificationFanOut())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Cancelled, aggregate.Status())
	taskRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_WrongCustomer(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, kernel.NewUUID(), kernel.NewUUID(), order.Paid)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockCancelOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewNotificationFanOut())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, commands.ErrCustomerNotAuthorized)
}

func TestCancelOrderCommandHandler_Handle_CompletedOrder(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	aggregate := orderInStatus(t, kernel.NewUUID(), userID, order.Completed)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	taskRepo := new(MockDeliveryTaskRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryTaskRepository").Return(taskRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	taskRepo.On("GetByOrderID", mock.Anything, aggregate.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once()

	factory := new(MockCancelOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, services.NewNotificationFanOut())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, order.ErrOrderAlreadyTerminal)
}
