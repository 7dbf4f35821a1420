package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetOrderStatusCommandIsNotConstructed = errors.New(
		"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
	)

	// ErrStatusNotVendorSettable is returned for targets outside the
	// vendor's reach. Paid is provider-driven and Cancelled has its own
	// command.
	ErrStatusNotVendorSettable = errors.New("status cannot be set by a vendor")

	// ErrVendorNotAuthorized is returned when a vendor operates on an order
	// that belongs to another vendor.
	ErrVendorNotAuthorized = errors.New("vendor does not own this order")

	// ErrMenuOrderCompletesByDelivery is returned when a vendor tries to
	// complete a delivery order directly. Menu orders complete only when
	// their task reaches Delivered; direct completion is for pickup orders.
	ErrMenuOrderCompletesByDelivery = errors.New("menu orders complete through delivery")

	// ErrOrderInTransit is returned when a vendor tries to reject an order
	// whose delivery a rider has already committed to.
	ErrOrderInTransit = errors.New("order delivery is already in progress")
)

// SetOrderStatusCommand represents a vendor-driven order transition:
// accepting, rejecting, confirming, or completing one of their orders.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	vendorID kernel.UUID
	target   order.Status

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a vendor transition command. Only
// Accepted, Rejected, Confirmed and Completed are vendor-settable targets.
func NewSetOrderStatusCommand(
	orderID kernel.UUID,
	vendorID kernel.UUID,
	target order.Status,
) (SetOrderStatusCommand, error) {
	cmd := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
		cmd.setTarget(target),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c SetOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// VendorID returns the acting vendor.
func (c SetOrderStatusCommand) VendorID() kernel.UUID { return c.vendorID }

// Target returns the requested status.
func (c SetOrderStatusCommand) Target() order.Status { return c.target }

func (c *SetOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStatusCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *SetOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case order.Accepted, order.Rejected, order.Confirmed, order.Completed:
	default:
		return ErrStatusNotVendorSettable
	}

	c.target = target
	return nil
}
