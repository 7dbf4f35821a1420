package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// ComputeRiderPayoutsCommandHandler handles the weekly rider payout batch.
// For every rider with at least one delivered task in the week it upserts a
// payout of deliveries × the per-delivery rate. The upsert keys on
// (rider, week start), so re-running a week recomputes in place and never
// produces a second row.
type ComputeRiderPayoutsCommandHandler struct {
	uowFactory        RiderPayoutUoWFactory
	amountPerDelivery kernel.Money
	logger            *slog.Logger
}

// NewComputeRiderPayoutsCommandHandler creates a handler for payout batches.
// amountPerDelivery comes from configuration.
func NewComputeRiderPayoutsCommandHandler(
	uowFactory RiderPayoutUoWFactory,
	amountPerDelivery kernel.Money,
	logger *slog.Logger,
) ComputeRiderPayoutsCommandHandler {
	return ComputeRiderPayoutsCommandHandler{
		uowFactory:        uowFactory,
		amountPerDelivery: amountPerDelivery,
		logger:            logger.With("component", "rider_payouts"),
	}
}

// Handle computes one weekly batch.
func (h *ComputeRiderPayoutsCommandHandler) Handle(ctx context.Context, cmd ComputeRiderPayoutsCommand) error {
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

	riders, err := uow.DeliveryTaskRepository().GetRidersWithDeliveriesInWeek(ctx, cmd.WeekStart())
	if err != nil {
		return err
	}

	for _, riderID := range riders {
		count, err := uow.DeliveryTaskRepository().CountDeliveredByRiderInWeek(ctx, riderID, cmd.WeekStart())
		if err != nil {
			return err
		}

		riderPayout, err := payout.NewRiderPayout(
			kernel.NewUUID(),
			riderID,
			cmd.WeekStart(),
			count,
			h.amountPerDelivery,
		)
		if err != nil {
			return err
		}

		if err = uow.RiderPayoutRepository().Upsert(ctx, riderPayout); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "weekly rider payouts computed",
		"week_start", cmd.WeekStart().Format("2006-01-02"),
		"riders", len(riders))

	return nil
}
