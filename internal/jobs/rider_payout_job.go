package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRiderPayoutSchedule runs the batch shortly after midnight every
// Monday, once the previous payout week has fully closed.
const DefaultRiderPayoutSchedule = "0 5 0 * * 1"

// RiderPayoutJob recomputes weekly rider payouts on a cron schedule.
// Each run targets the week containing yesterday, so the Monday run
// settles the week that ended at midnight.
type RiderPayoutJob struct {
	handler  commands.ComputeRiderPayoutsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRiderPayoutJob creates the weekly payout job. The schedule is a
// six-field cron expression with a seconds column.
func NewRiderPayoutJob(
	handler commands.ComputeRiderPayoutsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RiderPayoutJob {
	return &RiderPayoutJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "rider_payout_job"),
	}
}

// Start schedules the payout job.
func (j *RiderPayoutJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		at := time.Now().UTC().AddDate(0, 0, -1)
		cmd, err := commands.NewComputeRiderPayoutsCommand(at)
		if err != nil {
			j.logger.ErrorContext(ctx, "Rider payout job could not build command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Rider payout job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Rider payout job completed", "week_of", at.Format("2006-01-02"))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider payout job started", "schedule", j.schedule)
	return nil
}

// Stop stops the payout job.
func (j *RiderPayoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rider payout job stopped")
}
