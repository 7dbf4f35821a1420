// Package notificationrepo persists notifications. Inserts go through an
// ON CONFLICT DO NOTHING clause keyed on (event_key, recipient_id), so a
// retried state transition can re-emit its fan-out without double-notifying
// anyone.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
)

// NotificationDTO is the database representation of a notification.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_notifications_event_recipient;index"`
	Audience    string    `gorm:"type:varchar(16)"`
	Kind        string    `gorm:"type:varchar(32)"`
	Title       string    `gorm:"type:varchar(128)"`
	Message     string    `gorm:"type:text"`
	Payload     string    `gorm:"type:jsonb"`
	EventKey    string    `gorm:"type:varchar(128);uniqueIndex:idx_notifications_event_recipient"`
	Read        bool      `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) (NotificationDTO, error) {
	payloadRaw, err := notification.MarshalPayload(aggregate.Payload())
	if err != nil {
		return NotificationDTO{}, err
	}

	return NotificationDTO{
		ID:          aggregate.ID().Bytes(),
		RecipientID: aggregate.RecipientID().Bytes(),
		Audience:    string(aggregate.Audience()),
		Kind:        string(aggregate.Kind()),
		Title:       aggregate.Title(),
		Message:     aggregate.Message(),
		Payload:     string(payloadRaw),
		EventKey:    aggregate.EventKey(),
		Read:        aggregate.IsRead(),
		CreatedAt:   aggregate.CreatedAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	payload, err := notification.UnmarshalPayload(notification.Kind(dto.Kind), []byte(dto.Payload))
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, recipientID,
		notification.Audience(dto.Audience),
		dto.Title, dto.Message,
		payload, dto.EventKey, dto.Read, dto.CreatedAt,
	)
}
