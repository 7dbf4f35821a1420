package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrPaymentReferenceIsRequired is returned when constructing an order
	// without the payment reference that ties it to its checkout.
	ErrPaymentReferenceIsRequired = errs.NewValueIsRequiredError("payment reference")
)

// Order is the ledger aggregate for a single vendor line of a checkout.
// One checkout may create many orders sharing one payment reference; each
// order belongs to exactly one vendor and tracks one product line.
//
// Invariants:
//   - identifiers, money amounts, zone and type are validated at construction
//   - quantity is positive
//   - status changes go through the Status state machine only
//   - the payment reference never changes after construction
type Order struct {
	id               kernel.UUID
	vendorID         kernel.UUID
	userID           kernel.UUID
	productID        kernel.UUID
	quantity         int
	totalPrice       kernel.Money
	vatAmount        kernel.Money
	status           Status
	paymentReference string
	deliveryZone     kernel.Zone
	orderType        Type

	isConstructed bool
}

// NewOrder creates a Pending order line. totalPrice is the vendor's goods
// value for the line (unit price × quantity, excluding fees); vatAmount is
// the line's share of the checkout VAT.
func NewOrder(
	id kernel.UUID,
	vendorID kernel.UUID,
	userID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	totalPrice kernel.Money,
	vatAmount kernel.Money,
	paymentReference string,
	deliveryZone kernel.Zone,
	orderType Type,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setVendorID(vendorID),
		o.setUserID(userID),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setTotalPrice(totalPrice),
		o.setVATAmount(vatAmount),
		o.setPaymentReference(paymentReference),
		o.setDeliveryZone(deliveryZone),
		o.setOrderType(orderType),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with an explicit status.
func RestoreOrder(
	id kernel.UUID,
	vendorID kernel.UUID,
	userID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	totalPrice kernel.Money,
	vatAmount kernel.Money,
	status Status,
	paymentReference string,
	deliveryZone kernel.Zone,
	orderType Type,
) (*Order, error) {
	o, err := NewOrder(id, vendorID, userID, productID, quantity,
		totalPrice, vatAmount, paymentReference, deliveryZone, orderType)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// VendorID returns the owning vendor's identifier.
func (o *Order) VendorID() kernel.UUID { return o.vendorID }

// UserID returns the purchasing customer's identifier.
func (o *Order) UserID() kernel.UUID { return o.userID }

// ProductID returns the ordered product's identifier.
func (o *Order) ProductID() kernel.UUID { return o.productID }

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int { return o.quantity }

// TotalPrice returns the vendor's goods value for this line.
func (o *Order) TotalPrice() kernel.Money { return o.totalPrice }

// VATAmount returns this line's share of the checkout VAT.
func (o *Order) VATAmount() kernel.Money { return o.vatAmount }

// Status returns the current ledger status.
func (o *Order) Status() Status { return o.status }

// PaymentReference returns the checkout payment reference shared by all
// orders of the same checkout.
func (o *Order) PaymentReference() string { return o.paymentReference }

// DeliveryZone returns the customer's delivery zone.
func (o *Order) DeliveryZone() kernel.Zone { return o.deliveryZone }

// OrderType returns the fulfillment flow of the order.
func (o *Order) OrderType() Type { return o.orderType }

// IsOwnedBy reports whether vendorID is the single writer allowed to drive
// vendor-side transitions on this order.
func (o *Order) IsOwnedBy(vendorID kernel.UUID) bool {
	return o.vendorID.IsEqual(vendorID)
}

// MarkPaid applies the payment-provider verification to the order.
//
// The operation is idempotent with respect to re-delivered verification
// events: if the order already moved past Pending on a non-terminal path the
// call reports changed=false with no error and the order is not reprocessed.
// Verification against a terminal order fails with ErrOrderAlreadyTerminal.
func (o *Order) MarkPaid() (bool, error) {
	switch {
	case o.status == Pending:
		o.status = Paid
		return true, nil
	case o.status.IsTerminal():
		return false, ErrOrderAlreadyTerminal
	default:
		// Paid, Accepted, Confirmed: duplicate verification event.
		return false, nil
	}
}

// Accept records the vendor's commitment to fulfill the order.
func (o *Order) Accept() error {
	return o.transition(Accepted)
}

// Reject records the vendor declining the order. Terminal.
func (o *Order) Reject() error {
	return o.transition(Rejected)
}

// Confirm records the vendor marking the order prepared / handed over.
func (o *Order) Confirm() error {
	return o.transition(Confirmed)
}

// Complete marks the order fulfilled. For delivery orders this is driven by
// the dispatch machine reaching Delivered; for pickup orders by the vendor.
func (o *Order) Complete() error {
	return o.transition(Completed)
}

// Cancel withdraws the order from any non-terminal status. Terminal.
func (o *Order) Cancel() error {
	return o.transition(Cancelled)
}

// TransitionTo applies an arbitrary target status through the state machine.
// Used by the vendor-facing status boundary.
func (o *Order) TransitionTo(target Status) error {
	return o.transition(target)
}

func (o *Order) transition(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.vendorID = id
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.userID = id
	return nil
}

func (o *Order) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.productID = id
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setTotalPrice(totalPrice kernel.Money) error {
	if err := totalPrice.Validate(); err != nil {
		return err
	}
	o.totalPrice = totalPrice
	return nil
}

func (o *Order) setVATAmount(vatAmount kernel.Money) error {
	if err := vatAmount.Validate(); err != nil {
		return err
	}
	o.vatAmount = vatAmount
	return nil
}

func (o *Order) setPaymentReference(ref string) error {
	if ref == "" {
		return ErrPaymentReferenceIsRequired
	}
	o.paymentReference = ref
	return nil
}

func (o *Order) setDeliveryZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	o.deliveryZone = zone
	return nil
}

func (o *Order) setOrderType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}
