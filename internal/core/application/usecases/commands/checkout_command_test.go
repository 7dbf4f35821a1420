package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/services/pricing"
)

func checkoutLines(t *testing.T) []commands.CheckoutLine {
	t.Helper()
	return []commands.CheckoutLine{
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

func TestNewCheckoutCommand(t *testing.T) {
	lines := checkoutLines(t)

	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCheckoutCommand(
			kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "unilag",
			lines, "12 Herbert Macaulay Way", "08012345678")
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(
			kernel.NewUUID(), kernel.NewUUID(), "", "unilag", lines, "", "")
		assert.ErrorIs(t, err, commands.ErrReferenceIsRequired)
	})

	t.Run("missing destination", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(
			kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "", lines, "", "")
		assert.ErrorIs(t, err, commands.ErrDestinationIsRequired)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(
			kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "unilag", nil, "", "")
		assert.ErrorIs(t, err, commands.ErrCartIsEmpty)
	})

	t.Run("zero quantity line", func(t *testing.T) {
		bad := []commands.CheckoutLine{{
			VendorID:  kernel.NewUUID(),
			ProductID: kernel.NewUUID(),
			Quantity:  0,
			UnitPrice: testMoney(t, 1000),
			OrderType: order.TypeMenu,
		}}
		_, err := commands.NewCheckoutCommand(
			kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "unilag", bad, "", "")
		assert.ErrorIs(t, err, commands.ErrCartLineIsInvalid)
	})
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "unilag",
		checkoutLines(t), "12 Herbert Macaulay Way", "08012345678")
	require.NoError(t, err)

	repo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, pricing.NewLandmarkCalculator(nil))
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	// landmark model: base 1000 x 2 vendors - 500, vat on subtotal only
	assert.Equal(t, "5000", created.Subtotal().String())
	assert.Equal(t, "1500", created.DeliveryFee().String())
	assert.Equal(t, "375", created.TaxAmount().String())
	assert.Equal(t, "500", created.CommissionAmount().String())
	assert.Equal(t, "6875", created.TotalAmount().String())
	assert.Equal(t, payment.StatusPending, created.Status())
	assert.Len(t, created.PendingOrders(), 2)
	assert.Equal(t, "yaba", created.DeliveryDetails().Zone.Name())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_UnknownDestination(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "nowhere",
		checkoutLines(t), "", "")
	require.NoError(t, err)

	factory := new(MockCheckoutUoWFactory)

	h := commands.NewCheckoutCommandHandler(factory, pricing.NewLandmarkCalculator(nil))
	_, err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, pricing.ErrInvalidDeliveryZone)
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockCheckoutUoWFactory)

	h := commands.NewCheckoutCommandHandler(factory, pricing.NewLandmarkCalculator(nil))
	_, err := h.Handle(ctx, commands.CheckoutCommand{})
	require.Error(t, err)
}

func TestCheckoutCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), kernel.NewUUID(), "PAY-REF-1", "unilag",
		checkoutLines(t), "", "")
	require.NoError(t, err)

	repo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*payment.Payment")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutCommandHandler(factory, pricing.NewLandmarkCalculator(nil))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
