package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetTaskStatusCommandIsNotConstructed = errors.New(
		"SetTaskStatusCommand must be created via NewSetTaskStatusCommand constructor",
	)

	// ErrStatusNotRiderSettable is returned for targets riders cannot set.
	// Assignment happens through the claim, never through a status update.
	ErrStatusNotRiderSettable = errors.New("status cannot be set by a rider")
)

// SetTaskStatusCommand represents the assigned rider progressing a delivery:
// marking it picked up or delivered.
type SetTaskStatusCommand struct { //nolint:recvcheck //using for validation
	taskID  kernel.UUID
	riderID kernel.UUID
	target  delivery.Status

	guard guard.ConstructorGuard
}

// NewSetTaskStatusCommand creates a rider progress command. Only PickedUp and
// Delivered are rider-settable targets.
func NewSetTaskStatusCommand(
	taskID kernel.UUID,
	riderID kernel.UUID,
	target delivery.Status,
) (SetTaskStatusCommand, error) {
	cmd := SetTaskStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setRiderID(riderID),
		cmd.setTarget(target),
	); err != nil {
		return SetTaskStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetTaskStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetTaskStatusCommandIsNotConstructed)
}

// TaskID returns the task to progress.
func (c SetTaskStatusCommand) TaskID() kernel.UUID { return c.taskID }

// RiderID returns the acting rider.
func (c SetTaskStatusCommand) RiderID() kernel.UUID { return c.riderID }

// Target returns the requested status.
func (c SetTaskStatusCommand) Target() delivery.Status { return c.target }

func (c *SetTaskStatusCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *SetTaskStatusCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *SetTaskStatusCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case delivery.PickedUp, delivery.Delivered:
	default:
		return ErrStatusNotRiderSettable
	}

	c.target = target
	return nil
}
