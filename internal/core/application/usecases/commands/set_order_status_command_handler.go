package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// SetOrderStatusCommandHandler handles vendor-driven order transitions.
// Authorizes the acting vendor, applies the transition through the status
// machine, and appends the notifications the transition owes, all in one
// transaction.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderStatusUoWFactory
	fanOut     services.NotificationFanOut
}

// NewSetOrderStatusCommandHandler creates a handler for vendor transitions.
func NewSetOrderStatusCommandHandler(
	uowFactory OrderStatusUoWFactory,
	fanOut services.NotificationFanOut,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
	}
}

// Handle processes one vendor transition.
func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
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

	if !aggregate.IsOwnedBy(cmd.VendorID()) {
		return ErrVendorNotAuthorized
	}

	if cmd.Target() == order.Completed && aggregate.OrderType() == order.TypeMenu {
		return ErrMenuOrderCompletesByDelivery
	}

	// Rejecting (or completing a pickup order) ends the order's life, so a
	// linked task must not stay in the feed. An unclaimed task is withdrawn
	// with the transition; a claimed one means a rider is already on the
	// road and blocks it.
	if cmd.Target() == order.Rejected || cmd.Target() == order.Completed {
		task, taskErr := uow.DeliveryTaskRepository().GetByOrderID(ctx, cmd.OrderID())
		if taskErr != nil && !errors.Is(taskErr, errs.ErrObjectNotFound) {
			return taskErr
		}
		if task != nil {
			if task.Status() != delivery.Pending {
				return ErrOrderInTransit
			}
			if err = uow.DeliveryTaskRepository().Remove(ctx, task.ID()); err != nil {
				return err
			}
		}
	}

	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	notifications, err := h.notificationsFor(aggregate, cmd.Target())
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SetOrderStatusCommandHandler) notificationsFor(
	aggregate *order.Order,
	target order.Status,
) ([]*notification.Notification, error) {
	switch target {
	case order.Accepted:
		return h.fanOut.OrderAccepted(aggregate)
	case order.Rejected:
		return h.fanOut.OrderRejected(aggregate)
	case order.Confirmed:
		return h.fanOut.OrderConfirmed(aggregate)
	case order.Completed:
		return h.fanOut.OrderCompleted(aggregate)
	default:
		return nil, nil
	}
}
