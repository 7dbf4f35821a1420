package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrReferenceIsRequired   = errors.New("payment reference is required")
	ErrDestinationIsRequired = errors.New("destination is required")
	ErrCartIsEmpty           = errors.New("cart must contain at least one line")
	ErrCartLineIsInvalid     = errors.New("cart line is invalid")
)

// CheckoutLine is one cart entry submitted at checkout.
type CheckoutLine struct {
	VendorID  kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	OrderType order.Type
}

// CheckoutCommand represents a request to start a purchase: price the cart
// and open a pending payment against the provider reference. No order rows
// are created until the payment is verified.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	paymentID   kernel.UUID
	userID      kernel.UUID
	reference   string
	destination string
	lines       []CheckoutLine
	address     string
	phone       string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command. Validates identifiers, the
// provider reference, the destination, and every cart line.
func NewCheckoutCommand(
	paymentID kernel.UUID,
	userID kernel.UUID,
	reference string,
	destination string,
	lines []CheckoutLine,
	address string,
	phone string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),

		address: address,
		phone:   phone,
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setUserID(userID),
		cmd.setReference(reference),
		cmd.setDestination(destination),
		cmd.setLines(lines),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// PaymentID returns the client-generated identifier for the new payment.
func (c CheckoutCommand) PaymentID() kernel.UUID { return c.paymentID }

// UserID returns the purchasing customer's identifier.
func (c CheckoutCommand) UserID() kernel.UUID { return c.userID }

// Reference returns the payment provider reference.
func (c CheckoutCommand) Reference() string { return c.reference }

// Destination returns the delivery zone or landmark selected by the customer.
func (c CheckoutCommand) Destination() string { return c.destination }

// Lines returns the cart lines.
func (c CheckoutCommand) Lines() []CheckoutLine { return c.lines }

// Address returns the free-form delivery address.
func (c CheckoutCommand) Address() string { return c.address }

// Phone returns the customer's contact phone.
func (c CheckoutCommand) Phone() string { return c.phone }

func (c *CheckoutCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *CheckoutCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CheckoutCommand) setReference(reference string) error {
	if reference == "" {
		return ErrReferenceIsRequired
	}

	c.reference = reference
	return nil
}

func (c *CheckoutCommand) setDestination(destination string) error {
	if destination == "" {
		return ErrDestinationIsRequired
	}

	c.destination = destination
	return nil
}

func (c *CheckoutCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}

	for _, line := range lines {
		if err := errors.Join(
			line.VendorID.Validate(),
			line.ProductID.Validate(),
			line.UnitPrice.Validate(),
			line.OrderType.Validate(),
		); err != nil {
			return errors.Join(ErrCartLineIsInvalid, err)
		}
		if line.Quantity <= 0 {
			return ErrCartLineIsInvalid
		}
	}

	c.lines = lines
	return nil
}
