package commands

import (
	"context"
)

// MarkNotificationReadCommandHandler handles read receipts on the unread
// feed. Marking an already-read notification again is a no-op, so retried
// requests never fail.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for read receipts.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks one notification read for its recipient.
func (h *MarkNotificationReadCommandHandler) Handle(ctx context.Context, cmd MarkNotificationReadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.NotificationRepository().Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}

	if !aggregate.RecipientID().IsEqual(cmd.RecipientID()) {
		return ErrRecipientNotAuthorized
	}

	changed, err := aggregate.MarkRead()
	if err != nil {
		return err
	}
	if !changed {
		return uow.Commit(ctx)
	}

	if err = uow.NotificationRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
