package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CreateDeliveryTaskCommandHandler handles putting accepted orders up for
// rider claims. The vendor's pickup zone is copied onto the task at creation
// time; later profile changes never move a task mid-flight. Every rider
// registered in the zone is notified that the task is claimable.
type CreateDeliveryTaskCommandHandler struct {
	uowFactory CreateTaskUoWFactory
	fanOut     services.NotificationFanOut
}

// NewCreateDeliveryTaskCommandHandler creates a handler for task creation.
func NewCreateDeliveryTaskCommandHandler(
	uowFactory CreateTaskUoWFactory,
	fanOut services.NotificationFanOut,
) CreateDeliveryTaskCommandHandler {
	return CreateDeliveryTaskCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
	}
}

// Handle processes one task creation request.
func (h *CreateDeliveryTaskCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryTaskCommand) error {
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
	if aggregate.OrderType() != order.TypeMenu {
		return ErrOrderNotDeliverable
	}
	if aggregate.Status() != order.Accepted {
		return ErrOrderNotAccepted
	}

	existing, err := uow.DeliveryTaskRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return ErrTaskAlreadyExists
	}

	zone, err := uow.VendorDirectory().GetZone(ctx, cmd.VendorID())
	if err != nil {
		return err
	}

	task, err := delivery.NewTask(cmd.TaskID(), cmd.OrderID(), cmd.VendorID(), zone, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.DeliveryTaskRepository().Add(ctx, task); err != nil {
		return err
	}

	riders, err := uow.RiderDirectory().GetAllInZone(ctx, zone)
	if err != nil {
		return err
	}

	notifications, err := h.fanOut.TaskCreated(task, riders)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
