package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// SetTaskStatusCommandHandler handles rider progress on assigned deliveries.
// Reaching Delivered also completes the linked order; both writes and all
// notifications land in one transaction.
type SetTaskStatusCommandHandler struct {
	uowFactory TaskStatusUoWFactory
	fanOut     services.NotificationFanOut
}

// NewSetTaskStatusCommandHandler creates a handler for rider progress.
func NewSetTaskStatusCommandHandler(
	uowFactory TaskStatusUoWFactory,
	fanOut services.NotificationFanOut,
) SetTaskStatusCommandHandler {
	return SetTaskStatusCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
	}
}

// Handle processes one rider progress update.
func (h *SetTaskStatusCommandHandler) Handle(ctx context.Context, cmd SetTaskStatusCommand) error {
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

	task, err := uow.DeliveryTaskRepository().Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	linkedOrder, err := uow.OrderRepository().Get(ctx, task.OrderID())
	if err != nil {
		return err
	}

	// A cancelled or rejected order accepts no further task progress.
	if linkedOrder.Status().IsTerminal() {
		return order.ErrOrderAlreadyTerminal
	}

	now := time.Now().UTC()
	var notifications []*notification.Notification

	switch cmd.Target() {
	case delivery.PickedUp:
		if err = task.MarkPickedUp(cmd.RiderID(), now); err != nil {
			return err
		}
		if notifications, err = h.fanOut.TaskPickedUp(task, linkedOrder); err != nil {
			return err
		}
	case delivery.Delivered:
		if err = task.MarkDelivered(cmd.RiderID(), now); err != nil {
			return err
		}

		if err = linkedOrder.Complete(); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, linkedOrder); err != nil {
			return err
		}

		delivered, fanErr := h.fanOut.TaskDelivered(task, linkedOrder)
		if fanErr != nil {
			return fanErr
		}
		completed, fanErr := h.fanOut.OrderCompleted(linkedOrder)
		if fanErr != nil {
			return fanErr
		}
		notifications = append(delivered, completed...)
	}

	if err = uow.DeliveryTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
