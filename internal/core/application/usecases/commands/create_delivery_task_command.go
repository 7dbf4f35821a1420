package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateDeliveryTaskCommandIsNotConstructed = errors.New(
		"CreateDeliveryTaskCommand must be created via NewCreateDeliveryTaskCommand constructor",
	)

	// ErrOrderNotAccepted is returned when a task is requested for an order
	// the vendor has not accepted yet, or that already moved past dispatch.
	ErrOrderNotAccepted = errors.New("order is not in accepted status")

	// ErrOrderNotDeliverable is returned for pickup orders, which never get
	// delivery tasks.
	ErrOrderNotDeliverable = errors.New("order type does not require delivery")

	// ErrTaskAlreadyExists is returned when the order already has a task.
	ErrTaskAlreadyExists = errors.New("delivery task already exists for this order")
)

// CreateDeliveryTaskCommand represents a vendor's request to put an accepted
// order up for rider claims.
type CreateDeliveryTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	orderID  kernel.UUID
	vendorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryTaskCommand creates a task creation command.
func NewCreateDeliveryTaskCommand(
	taskID kernel.UUID,
	orderID kernel.UUID,
	vendorID kernel.UUID,
) (CreateDeliveryTaskCommand, error) {
	cmd := CreateDeliveryTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
	); err != nil {
		return CreateDeliveryTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryTaskCommandIsNotConstructed)
}

// TaskID returns the client-generated identifier for the new task.
func (c CreateDeliveryTaskCommand) TaskID() kernel.UUID { return c.taskID }

// OrderID returns the order the task will deliver.
func (c CreateDeliveryTaskCommand) OrderID() kernel.UUID { return c.orderID }

// VendorID returns the acting vendor.
func (c CreateDeliveryTaskCommand) VendorID() kernel.UUID { return c.vendorID }

func (c *CreateDeliveryTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CreateDeliveryTaskCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryTaskCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
