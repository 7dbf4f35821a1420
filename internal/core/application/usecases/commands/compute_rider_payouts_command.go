package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrComputeRiderPayoutsCommandIsNotConstructed = errors.New(
		"ComputeRiderPayoutsCommand must be created via NewComputeRiderPayoutsCommand constructor",
	)
	ErrWeekIsRequired = errors.New("week is required")
)

// ComputeRiderPayoutsCommand represents a request to compute the weekly
// payout batch for every rider with deliveries in the week containing the
// given time. Reruns for the same week converge to the same rows.
type ComputeRiderPayoutsCommand struct { //nolint:recvcheck //using for validation
	weekStart time.Time

	guard guard.ConstructorGuard
}

// NewComputeRiderPayoutsCommand creates a payout batch command for the ISO
// week containing at. The instant is normalized to the week's Monday 00:00
// UTC, so any time within the week names the same batch.
func NewComputeRiderPayoutsCommand(at time.Time) (ComputeRiderPayoutsCommand, error) {
	cmd := ComputeRiderPayoutsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setWeekStart(at); err != nil {
		return ComputeRiderPayoutsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputeRiderPayoutsCommand) Validate() error {
	return c.guard.Validate(ErrComputeRiderPayoutsCommandIsNotConstructed)
}

// WeekStart returns the normalized start of the batch week.
func (c ComputeRiderPayoutsCommand) WeekStart() time.Time { return c.weekStart }

func (c *ComputeRiderPayoutsCommand) setWeekStart(at time.Time) error {
	if at.IsZero() {
		return ErrWeekIsRequired
	}

	c.weekStart = payout.WeekStart(at)
	return nil
}
