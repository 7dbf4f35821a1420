package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ClaimTaskCommandHandler handles rider claims on pending delivery tasks.
//
// Eligibility checks (zone match, order not terminal) run first, but the
// decisive step is the repository's conditional claim: a single guarded
// update that only one concurrent claimant can win. Losers get
// delivery.ErrTaskAlreadyClaimed no matter how close the race was.
type ClaimTaskCommandHandler struct {
	uowFactory ClaimTaskUoWFactory
	fanOut     services.NotificationFanOut
}

// NewClaimTaskCommandHandler creates a handler for claim operations.
func NewClaimTaskCommandHandler(
	uowFactory ClaimTaskUoWFactory,
	fanOut services.NotificationFanOut,
) ClaimTaskCommandHandler {
	return ClaimTaskCommandHandler{
		uowFactory: uowFactory,
		fanOut:     fanOut,
	}
}

// Handle processes one claim attempt.
func (h *ClaimTaskCommandHandler) Handle(ctx context.Context, cmd ClaimTaskCommand) error {
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
	if linkedOrder.Status().IsTerminal() {
		return order.ErrOrderAlreadyTerminal
	}

	riderZone, err := uow.RiderDirectory().GetZone(ctx, cmd.RiderID())
	if err != nil {
		return err
	}
	if !riderZone.IsEqual(task.VendorLocation()) {
		return ErrRiderOutsideZone
	}

	claimed, err := uow.DeliveryTaskRepository().Claim(ctx, cmd.TaskID(), cmd.RiderID())
	if err != nil {
		return err
	}

	notifications, err := h.fanOut.TaskAssigned(claimed, linkedOrder)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, notifications); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
