package payment

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrReferenceIsRequired is returned when constructing a payment without
	// a provider reference.
	ErrReferenceIsRequired = errs.NewValueIsRequiredError("payment reference")

	// ErrNoOrderIntents is returned when constructing a payment without any
	// order intents; a checkout always carries at least one line.
	ErrNoOrderIntents = errs.NewValueIsRequiredError("order intents")

	// ErrTotalsInconsistent is returned when the charged total does not equal
	// subtotal + delivery fee + VAT.
	ErrTotalsInconsistent = errors.New("payment totals are inconsistent")
)

// OrderIntent is one serialized order line captured at checkout. Intents
// materialize into Order aggregates only once the payment succeeds; until
// then no order rows exist. This is the deliberate denormalization that keeps
// unpaid checkouts out of the ledger.
type OrderIntent struct {
	VendorID  kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	OrderType order.Type
}

// Validate checks the intent's fields.
func (i OrderIntent) Validate() error {
	if i.Quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", i.Quantity, 1, int(^uint(0)>>1))
	}
	return errors.Join(
		i.VendorID.Validate(),
		i.ProductID.Validate(),
		i.UnitPrice.Validate(),
		i.OrderType.Validate(),
	)
}

// LineTotal returns the goods value of the intent (unit price × quantity).
func (i OrderIntent) LineTotal() kernel.Money {
	return i.UnitPrice.MulInt(int64(i.Quantity))
}

// DeliveryDetails carries the customer's destination captured at checkout.
type DeliveryDetails struct {
	Address string
	Zone    kernel.Zone
	Phone   string
}

// Validate checks the destination zone; address and phone are free-form.
func (d DeliveryDetails) Validate() error {
	return d.Zone.Validate()
}

// Payment is the aggregate owning a checkout charge. One payment covers 1..N
// orders joined through the shared payment reference rather than a foreign
// key, because orders are only materialized after the payment succeeds.
type Payment struct {
	id               kernel.UUID
	userID           kernel.UUID
	subtotal         kernel.Money
	deliveryFee      kernel.Money
	taxAmount        kernel.Money
	commissionAmount kernel.Money
	totalAmount      kernel.Money
	status           Status
	reference        string
	pendingOrders    []OrderIntent
	deliveryDetails  DeliveryDetails

	isConstructed bool
}

// NewPayment creates a pending payment from checkout pricing and intents.
// It enforces totalAmount == subtotal + deliveryFee + taxAmount; commission
// is platform revenue and never part of the customer total.
func NewPayment(
	id kernel.UUID,
	userID kernel.UUID,
	reference string,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	taxAmount kernel.Money,
	commissionAmount kernel.Money,
	totalAmount kernel.Money,
	pendingOrders []OrderIntent,
	deliveryDetails DeliveryDetails,
) (*Payment, error) {
	p := &Payment{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setReference(reference),
		p.setAmounts(subtotal, deliveryFee, taxAmount, commissionAmount, totalAmount),
		p.setPendingOrders(pendingOrders),
		p.setDeliveryDetails(deliveryDetails),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a payment from persistence with an explicit status.
func RestorePayment(
	id kernel.UUID,
	userID kernel.UUID,
	reference string,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	taxAmount kernel.Money,
	commissionAmount kernel.Money,
	totalAmount kernel.Money,
	status Status,
	pendingOrders []OrderIntent,
	deliveryDetails DeliveryDetails,
) (*Payment, error) {
	p, err := NewPayment(id, userID, reference, subtotal, deliveryFee,
		taxAmount, commissionAmount, totalAmount, pendingOrders, deliveryDetails)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	p.status = status

	return p, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// UserID returns the paying customer's identifier.
func (p *Payment) UserID() kernel.UUID { return p.userID }

// Reference returns the unique provider reference for the charge.
func (p *Payment) Reference() string { return p.reference }

// Subtotal returns the goods value across all intents.
func (p *Payment) Subtotal() kernel.Money { return p.subtotal }

// DeliveryFee returns the delivery fee charged to the customer.
func (p *Payment) DeliveryFee() kernel.Money { return p.deliveryFee }

// TaxAmount returns the VAT charged to the customer.
func (p *Payment) TaxAmount() kernel.Money { return p.taxAmount }

// CommissionAmount returns the platform's retained commission. It is deducted
// from vendor payouts, not added to the customer total.
func (p *Payment) CommissionAmount() kernel.Money { return p.commissionAmount }

// TotalAmount returns the amount charged to the customer.
func (p *Payment) TotalAmount() kernel.Money { return p.totalAmount }

// Status returns the current payment status.
func (p *Payment) Status() Status { return p.status }

// PendingOrders returns the serialized order intents captured at checkout.
func (p *Payment) PendingOrders() []OrderIntent { return p.pendingOrders }

// DeliveryDetails returns the customer's destination details.
func (p *Payment) DeliveryDetails() DeliveryDetails { return p.deliveryDetails }

// MarkSuccess applies a positive provider verification.
//
// Repeated delivery of the same verification event is safe: an already
// successful payment reports changed=false with no error, and callers must
// not re-materialize orders or payouts. Verification of a failed or cancelled
// payment is rejected.
func (p *Payment) MarkSuccess() (bool, error) {
	switch p.status {
	case StatusPending:
		p.status = StatusSuccess
		return true, nil
	case StatusSuccess:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrPaymentAlreadyTerminal, p.status)
	}
}

// MarkFailed applies a negative provider verification.
func (p *Payment) MarkFailed() error {
	if p.status != StatusPending {
		return fmt.Errorf("%w: %s", ErrPaymentAlreadyTerminal, p.status)
	}
	p.status = StatusFailed
	return nil
}

// MarkCancelled withdraws a pending checkout.
func (p *Payment) MarkCancelled() error {
	if p.status != StatusPending {
		return fmt.Errorf("%w: %s", ErrPaymentAlreadyTerminal, p.status)
	}
	p.status = StatusCancelled
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.userID = id
	return nil
}

func (p *Payment) setReference(reference string) error {
	if reference == "" {
		return ErrReferenceIsRequired
	}
	p.reference = reference
	return nil
}

func (p *Payment) setAmounts(subtotal, deliveryFee, taxAmount, commissionAmount, totalAmount kernel.Money) error {
	if err := errors.Join(
		subtotal.Validate(),
		deliveryFee.Validate(),
		taxAmount.Validate(),
		commissionAmount.Validate(),
		totalAmount.Validate(),
	); err != nil {
		return err
	}

	expected := subtotal.Add(deliveryFee).Add(taxAmount)
	if !totalAmount.IsEqual(expected) {
		return fmt.Errorf("%w: total %s != subtotal %s + delivery fee %s + tax %s",
			ErrTotalsInconsistent, totalAmount, subtotal, deliveryFee, taxAmount)
	}

	p.subtotal = subtotal
	p.deliveryFee = deliveryFee
	p.taxAmount = taxAmount
	p.commissionAmount = commissionAmount
	p.totalAmount = totalAmount
	return nil
}

func (p *Payment) setPendingOrders(intents []OrderIntent) error {
	if len(intents) == 0 {
		return ErrNoOrderIntents
	}
	for _, intent := range intents {
		if err := intent.Validate(); err != nil {
			return err
		}
	}
	p.pendingOrders = intents
	return nil
}

func (p *Payment) setDeliveryDetails(details DeliveryDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.deliveryDetails = details
	return nil
}
