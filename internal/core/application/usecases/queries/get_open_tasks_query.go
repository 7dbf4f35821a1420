package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenTasksQueryIsNotConstructed = errors.New(
	"GetOpenTasksQuery must be created via NewGetOpenTasksQuery constructor",
)

// GetOpenTasksQuery retrieves the unclaimed delivery tasks in a zone. This
// is the feed a rider polls before claiming work.
type GetOpenTasksQuery struct { //nolint:recvcheck //using for validation
	zone kernel.Zone

	guard guard.ConstructorGuard
}

// NewGetOpenTasksQuery creates a task feed query for a zone.
func NewGetOpenTasksQuery(zone kernel.Zone) (GetOpenTasksQuery, error) {
	q := GetOpenTasksQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setZone(zone); err != nil {
		return GetOpenTasksQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenTasksQueryIsNotConstructed)
}

// Zone returns the zone whose feed is requested.
func (q GetOpenTasksQuery) Zone() kernel.Zone { return q.zone }

func (q *GetOpenTasksQuery) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	q.zone = zone
	return nil
}

// GetOpenTasksQueryResponse is one unclaimed task in the feed.
type GetOpenTasksQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	VendorLocation kernel.Zone
	CreatedAt      time.Time
}
