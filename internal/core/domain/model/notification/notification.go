package notification

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Audience names which side of the marketplace a notification targets.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceVendor   Audience = "vendor"
	AudienceRider    Audience = "rider"
)

// Validate checks that the Audience is one of the defined audiences.
func (a Audience) Validate() error {
	switch a {
	case AudienceCustomer, AudienceVendor, AudienceRider:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("notification audience",
			fmt.Errorf("%q is not a valid audience", string(a)))
	}
}

// Notification is a single message delivered to one recipient about one
// domain event. The pair (eventKey, recipientID) identifies the event
// occurrence for a recipient, so replaying the same event never produces a
// second row.
type Notification struct {
	guard guard.ConstructorGuard

	id          kernel.UUID
	recipientID kernel.UUID
	audience    Audience
	kind        Kind
	title       string
	message     string
	payload     Payload
	eventKey    string
	read        bool
	createdAt   time.Time
}

// NewNotification creates a notification for a recipient. eventKey must
// uniquely identify the event occurrence (kind plus subject entity ID); the
// same key for the same recipient is deduplicated by storage.
func NewNotification(
	recipientID kernel.UUID,
	audience Audience,
	title string,
	message string,
	payload Payload,
	eventKey string,
) (*Notification, error) {
	err := errors.Join(
		validateRecipientID(recipientID),
		audience.Validate(),
		validateTitle(title),
		validateMessage(message),
		validatePayload(payload),
		validateEventKey(eventKey),
	)
	if err != nil {
		return nil, err
	}

	return &Notification{
		guard: guard.NewConstructorGuard(),

		id:          kernel.NewUUID(),
		recipientID: recipientID,
		audience:    audience,
		kind:        payload.Kind(),
		title:       title,
		message:     message,
		payload:     payload,
		eventKey:    eventKey,
		read:        false,
		createdAt:   time.Now().UTC(),
	}, nil
}

// RestoreNotification rebuilds a notification from storage without applying
// creation-time rules.
func RestoreNotification(
	id kernel.UUID,
	recipientID kernel.UUID,
	audience Audience,
	title string,
	message string,
	payload Payload,
	eventKey string,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	err := errors.Join(
		id.Validate(),
		validateRecipientID(recipientID),
		audience.Validate(),
		validatePayload(payload),
		validateEventKey(eventKey),
	)
	if err != nil {
		return nil, err
	}

	return &Notification{
		guard: guard.NewConstructorGuard(),

		id:          id,
		recipientID: recipientID,
		audience:    audience,
		kind:        payload.Kind(),
		title:       title,
		message:     message,
		payload:     payload,
		eventKey:    eventKey,
		read:        read,
		createdAt:   createdAt,
	}, nil
}

func (n *Notification) ID() kernel.UUID          { return n.id }
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }
func (n *Notification) Audience() Audience       { return n.audience }
func (n *Notification) Kind() Kind               { return n.kind }
func (n *Notification) Title() string            { return n.title }
func (n *Notification) Message() string          { return n.message }
func (n *Notification) Payload() Payload         { return n.payload }
func (n *Notification) EventKey() string         { return n.eventKey }
func (n *Notification) IsRead() bool             { return n.read }
func (n *Notification) CreatedAt() time.Time     { return n.createdAt }

// MarkRead flips the read flag. Reports whether the notification changed, so
// repeated reads stay no-ops.
func (n *Notification) MarkRead() (changed bool, err error) {
	if err := n.Validate(); err != nil {
		return false, err
	}
	if n.read {
		return false, nil
	}
	n.read = true
	return true, nil
}

func (n *Notification) Validate() error {
	return n.guard.Validate(errs.NewValueIsRequiredError("notification"))
}

func validateRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipientID", err)
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	return nil
}

func validateMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	return nil
}

func validatePayload(payload Payload) error {
	if payload == nil {
		return errs.NewValueIsRequiredError("payload")
	}
	return payload.Kind().Validate()
}

func validateEventKey(eventKey string) error {
	if eventKey == "" {
		return errs.NewValueIsRequiredError("eventKey")
	}
	return nil
}
