package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/domain/services"
)

// VerifyPaymentCommandHandler handles payment provider verification events.
//
// On the first confirmed verification it performs, in one transaction:
//   - flips the payment to success,
//   - materializes one Paid order per captured intent,
//   - records one vendor payout per order (90% of the order total),
//   - notifies each vendor of their new order.
//
// Re-delivered events find the payment already successful and change
// nothing. Payout rows carry a storage uniqueness on (payment, order), so
// even a crash between commit and acknowledgement cannot double-credit.
type VerifyPaymentCommandHandler struct {
	uowFactory VerifyPaymentUoWFactory
	fanOut     services.NotificationFanOut
	logger     *slog.Logger
}

// NewVerifyPaymentCommandHandler creates a handler for verification events.
func NewVerifyPaymentCommandHandler(
	uowFactory VerifyPaymentUoWFactory,
	fanOut services.NotificationFanOut,
	logger *slog.Logger,
) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
		logger:     logger.With("component", "verify_payment"),
	}
}

// Handle processes one verification event.
func (h *VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.PaymentRepository().GetByReference(ctx, cmd.Reference())
	if err != nil {
		return err
	}

	if !cmd.Verified() {
		return h.handleFailure(ctx, uow, aggregate)
	}

	changed, err := aggregate.MarkSuccess()
	if err != nil {
		return err
	}
	if !changed {
		h.logger.InfoContext(ctx, "payment already verified, skipping",
			"reference", aggregate.Reference())
		return uow.Commit(ctx)
	}

	if err = uow.PaymentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.materializeOrders(ctx, uow, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *VerifyPaymentCommandHandler) handleFailure(
	ctx context.Context,
	uow VerifyPaymentUoW,
	aggregate *payment.Payment,
) error {
	if err := aggregate.MarkFailed(); err != nil {
		// A repeated failure event for an already settled payment is
		// acknowledged without changes.
		if errors.Is(err, payment.ErrPaymentAlreadyTerminal) {
			return uow.Commit(ctx)
		}
		return err
	}

	if err := uow.PaymentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *VerifyPaymentCommandHandler) materializeOrders(
	ctx context.Context,
	uow VerifyPaymentUoW,
	aggregate *payment.Payment,
) error {
	vatRate := decimal.Zero
	if !aggregate.Subtotal().IsZero() {
		vatRate = aggregate.TaxAmount().Amount().Div(aggregate.Subtotal().Amount())
	}

	for _, intent := range aggregate.PendingOrders() {
		lineTotal := intent.LineTotal()

		newOrder, err := order.NewOrder(
			kernel.NewUUID(),
			intent.VendorID,
			aggregate.UserID(),
			intent.ProductID,
			intent.Quantity,
			lineTotal,
			lineTotal.MulRate(vatRate),
			aggregate.Reference(),
			aggregate.DeliveryDetails().Zone,
			intent.OrderType,
		)
		if err != nil {
			return err
		}

		if _, err = newOrder.MarkPaid(); err != nil {
			return err
		}

		if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
			return err
		}

		if err = h.creditVendor(ctx, uow, aggregate, newOrder); err != nil {
			return err
		}

		notifications, err := h.fanOut.OrderPaid(newOrder)
		if err != nil {
			return err
		}
		if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
			return err
		}
	}

	return nil
}

func (h *VerifyPaymentCommandHandler) creditVendor(
	ctx context.Context,
	uow VerifyPaymentUoW,
	aggregate *payment.Payment,
	newOrder *order.Order,
) error {
	vendorPayout, err := payout.NewVendorPayout(
		kernel.NewUUID(),
		newOrder.VendorID(),
		aggregate.ID(),
		newOrder.ID(),
		newOrder.TotalPrice(),
	)
	if err != nil {
		return err
	}

	if err = uow.VendorPayoutRepository().Add(ctx, vendorPayout); err != nil {
		if errors.Is(err, payout.ErrPayoutAlreadyExists) {
			h.logger.DebugContext(ctx, "duplicate vendor payout suppressed",
				"payment_id", aggregate.ID(), "order_id", newOrder.ID())
			return nil
		}
		return err
	}

	return nil
}
