package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/services/pricing"
)

// PricingCalculator is the pricing dependency of checkout: it quotes carts
// and resolves destinations to rider-matching zones. Both calculators in the
// pricing package satisfy it.
type PricingCalculator interface {
	pricing.Calculator
	pricing.ZoneResolver
}

// CheckoutCommandHandler handles the business logic for starting a purchase.
// Prices the cart with the active calculator and opens a pending payment
// holding the order intents. Orders themselves are not created here; they
// materialize when the payment is verified.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	calculator PricingCalculator
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	calculator PricingCalculator,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
	}
}

// Handle prices the cart and persists the pending payment. Returns the
// created payment so callers can present the breakdown to the customer.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cartLines := make([]pricing.CartLine, 0, len(cmd.Lines()))
	intents := make([]payment.OrderIntent, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		cartLines = append(cartLines, pricing.CartLine{
			VendorID:  line.VendorID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		intents = append(intents, payment.OrderIntent{
			VendorID:  line.VendorID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			OrderType: line.OrderType,
		})
	}

	quote, err := h.calculator.Quote(cmd.Destination(), cartLines)
	if err != nil {
		return nil, err
	}

	zone, err := h.calculator.ZoneFor(cmd.Destination())
	if err != nil {
		return nil, err
	}

	aggregate, err := payment.NewPayment(
		cmd.PaymentID(),
		cmd.UserID(),
		cmd.Reference(),
		quote.Subtotal,
		quote.DeliveryFee,
		quote.VATAmount,
		quote.CommissionAmount,
		quote.Total,
		intents,
		payment.DeliveryDetails{
			Address: cmd.Address(),
			Zone:    zone,
			Phone:   cmd.Phone(),
		},
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaymentRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
