package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrClaimTaskCommandIsNotConstructed = errors.New(
		"ClaimTaskCommand must be created via NewClaimTaskCommand constructor",
	)

	// ErrRiderOutsideZone is returned when the claiming rider's registered
	// zone differs from the task's vendor location.
	ErrRiderOutsideZone = errors.New("rider is outside the task's zone")
)

// ClaimTaskCommand represents a rider's attempt to take ownership of a
// pending delivery task. Of any number of concurrent claims on one task,
// exactly one succeeds.
type ClaimTaskCommand struct { //nolint:recvcheck //using for validation
	taskID  kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimTaskCommand creates a claim command.
func NewClaimTaskCommand(taskID kernel.UUID, riderID kernel.UUID) (ClaimTaskCommand, error) {
	cmd := ClaimTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTaskID(taskID),
		cmd.setRiderID(riderID),
	); err != nil {
		return ClaimTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimTaskCommand) Validate() error {
	return c.guard.Validate(ErrClaimTaskCommandIsNotConstructed)
}

// TaskID returns the task to claim.
func (c ClaimTaskCommand) TaskID() kernel.UUID { return c.taskID }

// RiderID returns the claiming rider.
func (c ClaimTaskCommand) RiderID() kernel.UUID { return c.riderID }

func (c *ClaimTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *ClaimTaskCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
