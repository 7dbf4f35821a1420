package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// VendorDirectory is a read-only view of vendor profiles. The fulfillment
// engine consults it for the vendor's pickup zone when a delivery task is
// created; the zone is copied onto the task and never re-read.
type VendorDirectory interface {
	// GetZone returns the vendor's current pickup zone.
	GetZone(ctx context.Context, vendorID kernel.UUID) (kernel.Zone, error)
}

// RiderDirectory is a read-only view of rider profiles.
type RiderDirectory interface {
	// GetZone returns the rider's registered operating zone. Claim
	// eligibility compares it against the task's vendor location.
	GetZone(ctx context.Context, riderID kernel.UUID) (kernel.Zone, error)

	// GetAllInZone lists the riders registered in a zone. Used for the
	// zone-wide fan-out when a task becomes claimable.
	GetAllInZone(ctx context.Context, zone kernel.Zone) ([]kernel.UUID, error)
}
