package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/guard"
)

var ErrGetUnreadNotificationsQueryIsNotConstructed = errors.New(
	"GetUnreadNotificationsQuery must be created via NewGetUnreadNotificationsQuery constructor",
)

// GetUnreadNotificationsQuery retrieves a recipient's unread notifications,
// newest first. Serves the inbox badge for customers, vendors and riders
// alike.
//
// Example:
//
//	query, err := NewGetUnreadNotificationsQuery(recipientID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetUnreadNotificationsQueryHandler(db)
//	unread, err := handler.Handle(ctx, query)
type GetUnreadNotificationsQuery struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnreadNotificationsQuery creates an inbox query for a recipient.
func NewGetUnreadNotificationsQuery(recipientID kernel.UUID) (GetUnreadNotificationsQuery, error) {
	q := GetUnreadNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setRecipientID(recipientID); err != nil {
		return GetUnreadNotificationsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnreadNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreadNotificationsQueryIsNotConstructed)
}

// RecipientID returns the inbox owner.
func (q GetUnreadNotificationsQuery) RecipientID() kernel.UUID { return q.recipientID }

func (q *GetUnreadNotificationsQuery) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	q.recipientID = recipientID
	return nil
}

// GetUnreadNotificationsQueryResponse is one unread inbox entry. Payload
// carries the kind-specific details as raw JSON for the client to decode.
type GetUnreadNotificationsQueryResponse struct {
	ID        kernel.UUID
	Kind      notification.Kind
	Title     string
	Message   string
	Payload   json.RawMessage
	CreatedAt time.Time
}
