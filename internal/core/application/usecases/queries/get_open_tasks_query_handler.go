package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// GetOpenTasksQueryHandler reads the unclaimed task feed for a zone. Oldest
// tasks come first so long-waiting orders surface at the top.
type GetOpenTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenTasksQueryHandler creates a handler for task feed queries.
func NewGetOpenTasksQueryHandler(db *gorm.DB) GetOpenTasksQueryHandler {
	return GetOpenTasksQueryHandler{db: db}
}

// Handle returns the zone's pending tasks, oldest first.
func (h GetOpenTasksQueryHandler) Handle(
	ctx context.Context,
	query GetOpenTasksQuery,
) ([]GetOpenTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetOpenTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			vendor_location,
			created_at
		FROM delivery_tasks
		WHERE status = ? AND vendor_location = ?
		ORDER BY created_at
	`, delivery.Pending.String(), query.Zone().Name()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			orderID        uuid.UUID
			vendorLocation string
			createdAt      time.Time
		)

		if err = rows.Scan(&id, &orderID, &vendorLocation, &createdAt); err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		linkedOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		zone, zoneErr := kernel.NewZone(vendorLocation)
		if zoneErr != nil {
			return nil, zoneErr
		}

		tasks = append(tasks, GetOpenTasksQueryResponse{
			ID:             taskID,
			OrderID:        linkedOrderID,
			VendorLocation: zone,
			CreatedAt:      createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
