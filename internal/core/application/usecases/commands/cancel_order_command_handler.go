package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler handles customer cancellations.
//
// Cancellation succeeds from any non-terminal order status. An unclaimed
// task is withdrawn from the feed alongside the cancel; a claimed one keeps
// its row, and the rider's next progress report is refused against the now
// terminal order.
type CancelOrderCommandHandler struct {
	uowFactory CancelOrderUoWFactory
	fanOut     services.NotificationFanOut
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(
	uowFactory CancelOrderUoWFactory,
	fanOut services.NotificationFanOut,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
	}
}

// Handle processes one cancellation.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.UserID().IsEqual(cmd.UserID()) {
		return ErrCustomerNotAuthorized
	}

	task, err := uow.DeliveryTaskRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if task != nil && task.Status() == delivery.Pending {
		if err = uow.DeliveryTaskRepository().Remove(ctx, task.ID()); err != nil {
			return err
		}
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	notifications, err := h.fanOut.OrderCancelled(aggregate)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
