package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryTaskRepository defines the persistence contract for delivery task
// aggregates, including the atomic claim.
type DeliveryTaskRepository interface {
	// Add persists a new delivery task to storage.
	Add(ctx context.Context, aggregate *delivery.Task) error

	// Update persists changes to an existing delivery task.
	Update(ctx context.Context, aggregate *delivery.Task) error

	// Get retrieves a delivery task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Task, error)

	// GetByOrderID retrieves the task created for an order, if any.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Task, error)

	// GetAllPendingInZone retrieves unclaimed tasks whose vendor location
	// matches the zone, oldest first. This is the rider-facing task feed.
	GetAllPendingInZone(ctx context.Context, zone kernel.Zone) ([]*delivery.Task, error)

	// Claim atomically assigns the task to the rider. The update succeeds
	// only while the task is still pending and unowned; when another rider
	// got there first, Claim returns delivery.ErrTaskAlreadyClaimed.
	// Exactly one of any number of concurrent claimants wins.
	Claim(ctx context.Context, taskID kernel.UUID, riderID kernel.UUID) (*delivery.Task, error)

	// Remove deletes an unclaimed task from the feed. Used when the linked
	// order is cancelled before any rider commits.
	Remove(ctx context.Context, taskID kernel.UUID) error

	// CountDeliveredByRiderInWeek counts tasks the rider delivered within
	// [weekStart, weekStart+7d). Input to the weekly payout batch.
	CountDeliveredByRiderInWeek(ctx context.Context, riderID kernel.UUID, weekStart time.Time) (int, error)

	// GetRidersWithDeliveriesInWeek lists the riders that delivered at least
	// one task within [weekStart, weekStart+7d).
	GetRidersWithDeliveriesInWeek(ctx context.Context, weekStart time.Time) ([]kernel.UUID, error)
}
