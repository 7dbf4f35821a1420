package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// VendorPayoutRepository defines the persistence contract for vendor payouts.
type VendorPayoutRepository interface {
	// Add persists a vendor payout. Storage enforces uniqueness on
	// (payment, order): inserting a payout that already exists is reported
	// as payout.ErrPayoutAlreadyExists, which callers treat as success so
	// replayed payment events never double-credit a vendor.
	Add(ctx context.Context, aggregate *payout.VendorPayout) error

	// Update persists status changes to an existing vendor payout.
	Update(ctx context.Context, aggregate *payout.VendorPayout) error

	// Get retrieves a vendor payout by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payout.VendorPayout, error)

	// GetAllByVendor retrieves all payouts owed to one vendor, newest first.
	GetAllByVendor(ctx context.Context, vendorID kernel.UUID) ([]*payout.VendorPayout, error)
}

// RiderPayoutRepository defines the persistence contract for weekly rider
// payout batches.
type RiderPayoutRepository interface {
	// Upsert inserts the payout or, when a row for (rider, week start)
	// already exists, replaces its totals in place. Re-running a weekly
	// batch therefore converges to one row per rider per week.
	Upsert(ctx context.Context, aggregate *payout.RiderPayout) error

	// Get retrieves a rider payout by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payout.RiderPayout, error)

	// GetByRiderAndWeek retrieves the payout for one rider and week, if any.
	GetByRiderAndWeek(ctx context.Context, riderID kernel.UUID, weekStart time.Time) (*payout.RiderPayout, error)

	// GetAllByWeek retrieves every rider payout computed for a week.
	GetAllByWeek(ctx context.Context, weekStart time.Time) ([]*payout.RiderPayout, error)
}
