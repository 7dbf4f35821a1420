package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists notifications in bulk. Storage enforces uniqueness on
	// (event key, recipient); rows that already exist are skipped rather
	// than failing the batch, so a retried transition never produces a
	// second notification for the same recipient.
	Add(ctx context.Context, notifications []*notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllUnreadByRecipient retrieves unread notifications for one
	// recipient, newest first. Recipients may only see their own.
	GetAllUnreadByRecipient(ctx context.Context, recipientID kernel.UUID) ([]*notification.Notification, error)

	// Update persists read-flag changes.
	Update(ctx context.Context, aggregate *notification.Notification) error
}
