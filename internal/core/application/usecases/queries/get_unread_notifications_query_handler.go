package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// GetUnreadNotificationsQueryHandler reads the unread inbox straight from
// the database, bypassing the aggregate. Read side of the notification
// fan-out.
type GetUnreadNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnreadNotificationsQueryHandler creates a handler for inbox queries.
func NewGetUnreadNotificationsQueryHandler(db *gorm.DB) GetUnreadNotificationsQueryHandler {
	return GetUnreadNotificationsQueryHandler{db: db}
}

// Handle returns the recipient's unread notifications, newest first.
func (h GetUnreadNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUnreadNotificationsQuery,
) ([]GetUnreadNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetUnreadNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			title,
			message,
			payload,
			created_at
		FROM notifications
		WHERE recipient_id = ? AND read = FALSE
		ORDER BY created_at DESC
	`, query.RecipientID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			kind      string
			title     string
			message   string
			payload   []byte
			createdAt time.Time
		)

		if err = rows.Scan(&id, &kind, &title, &message, &payload, &createdAt); err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		notifications = append(notifications, GetUnreadNotificationsQueryResponse{
			ID:        notificationID,
			Kind:      notification.Kind(kind),
			Title:     title,
			Message:   message,
			Payload:   payload,
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
