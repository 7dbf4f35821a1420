package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/domain/services"
)

func testIntents(t *testing.T) []payment.OrderIntent {
	t.Helper()
	return []payment.OrderIntent{
		{
			VendorID:  kernel.NewUUID(),
			ProductID: kernel.NewUUID(),
			Quantity:  2,
			UnitPrice: testMoney(t, 1500),
			OrderType: order.TypeMenu,
		},
		{
			VendorID:  kernel.NewUUID(),
			ProductID: kernel.NewUUID(),
			Quantity:  2,
			UnitPrice: testMoney(t, 1000),
			OrderType: order.TypeMenu,
		},
	}
}

func TestNewVerifyPaymentCommand(t *testing.T) {
	cmd, err := commands.NewVerifyPaymentCommand("PAY-REF-1", true)
	require.NoError(t, err)
	assert.Equal(t, "PAY-REF-1", cmd.Reference())
	assert.True(t, cmd.Verified())

	_, err = commands.NewVerifyPaymentCommand("", true)
	assert.ErrorIs(t, err, commands.ErrReferenceIsRequired)
}

func TestVerifyPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	intents := testIntents(t)
	aggregate := pendingPayment(t, userID, "PAY-REF-1", intents)

	cmd, err := commands.NewVerifyPaymentCommand("PAY-REF-1", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	payoutRepo := new(MockVendorPayoutRepository)
	notificationRepo := new(MockNotificationRepository)

	var createdOrders []*order.Order
	var createdPayouts []*payout.VendorPayout

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("VendorPayoutRepository").Return(payoutRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	paymentRepo.On("GetByReference", mock.Anything, "PAY-REF-1").Return(aggregate, nil).Once()
	paymentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			createdOrders = append(createdOrders, args.Get(1).(*order.Order))
		}).Return(nil).Twice()
	payoutRepo.On("Add", mock.Anything, mock.AnythingOfType("*payout.VendorPayout")).
		Run(func(args mock.Arguments) {
			createdPayouts = append(createdPayouts, args.Get(1).(*payout.VendorPayout))
		}).Return(nil).Twice()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Return(nil).Twice()

	factory := new(MockVerifyPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPaymentCommandHandler(factory, services.NewNotificationFanOut(), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, payment.StatusSuccess, aggregate.Status())

	require.Len(t, createdOrders, 2)
	for i, o := range createdOrders {
		assert.Equal(t, order.Paid, o.Status())
		assert.True(t, o.VendorID().IsEqual(intents[i].VendorID))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.True(t, o.TotalPrice().IsEqual(intents[i].LineTotal()))
		assert.Equal(t, "PAY-REF-1", o.PaymentReference())
	}

	// payout sum property: 90% of the goods value
	require.Len(t, createdPayouts, 2)
	sum := kernel.ZeroMoney()
	for _, p := range createdPayouts {
		sum = sum.Add(p.Amount())
	}
	assert.Equal(t, "4500", sum.String())

	uow.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	payoutRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestVerifyPaymentCommandHandler_Handle_RepeatedDeliveryIsNoOp(t *testing.T) {
	ctx := t.Context()
	intents := testIntents(t)
	aggregate := pendingPayment(t, kernel.NewUUID(), "PAY-REF-1", intents)
	_, err := aggregate.MarkSuccess()
	require.NoError(t, err)

	cmd, err := commands.NewVerifyPaymentCommand("PAY-REF-1", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetByReference", mock.Anything, "PAY-REF-1").Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVerifyPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPaymentCommandHandler(factory, services.NewNotificationFanOut(), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	// no orders, payouts or notifications were touched
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "VendorPayoutRepository")
	uow.AssertNotCalled(t, "NotificationRepository")
	uow.AssertExpectations(t)
}

func TestVerifyPaymentCommandHandler_Handle_DuplicatePayoutSuppressed(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingPayment(t, kernel.NewUUID(), "PAY-REF-1", testIntents(t)[:1])

	cmd, err := commands.NewVerifyPaymentCommand("PAY-REF-1", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	payoutRepo := new(MockVendorPayoutRepository)
	notificationRepo := new(MockNotificationRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("PaymentRepository").Return(paymentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("VendorPayoutRepository").Return(payoutRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	paymentRepo.On("GetByReference", mock.Anything, "PAY-REF-1").Return(aggregate, nil).Once()
	paymentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	payoutRepo.On("Add", mock.Anything, mock.AnythingOfType("*payout.VendorPayout")).
		Return(payout.ErrPayoutAlreadyExists).Once()
	notificationRepo.On("Add", mock.Anything, mock.AnythingOfType("[]*notification.Notification")).
		Return(nil).Once()

	factory := new(MockVerifyPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPaymentCommandHandler(factory, services.NewNotificationFanOut(), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestVerifyPaymentCommandHandler_Handle_ProviderDeclined(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingPayment(t, kernel.NewUUID(), "PAY-REF-1", testIntents(t))

	cmd, err := commands.NewVerifyPaymentCommand("PAY-REF-1", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetByReference", mock.Anything, "PAY-REF-1").Return(aggregate, nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockVerifyPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewVerifyPaymentCommandHandler(factory, services.NewNotificationFanOut(), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, payment.StatusFailed, aggregate.Status())
	uow.AssertExpectations(t)
}
