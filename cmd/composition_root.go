package cmd

import (
	"fmt"
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/domain/services/pricing"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and use case together. Handlers are
// constructed on demand so each one carries only the dependencies it needs.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	calculator commands.PricingCalculator
	fanOut     services.NotificationFanOut
	payoutRate kernel.Money
	logger     *slog.Logger
}

// NewCompositionRoot builds the root from config. Fails on an unknown
// pricing mode or an unparseable payout rate.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	calculator, err := newCalculator(configs.PricingMode)
	if err != nil {
		return CompositionRoot{}, err
	}

	payoutRate, err := kernel.MoneyFromString(configs.RiderPayoutRate)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid rider payout rate %q: %w", configs.RiderPayoutRate, err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		calculator: calculator,
		fanOut:     services.NewNotificationFanOut(),
		payoutRate: payoutRate,
		logger:     logger,
	}, nil
}

func newCalculator(mode string) (commands.PricingCalculator, error) {
	switch mode {
	case "landmark":
		return pricing.NewLandmarkCalculator(nil), nil
	case "state":
		return pricing.NewStateCalculator(nil), nil
	default:
		return nil, fmt.Errorf("unknown pricing mode %q (want landmark or state)", mode)
	}
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.calculator)
}

func (c *CompositionRoot) CreateVerifyPaymentCommandHandler() commands.VerifyPaymentCommandHandler {
	var f commands.VerifyPaymentUoWFactory = FuncVerifyPaymentUoWFactory(func() commands.VerifyPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyPaymentCommandHandler(f, c.fanOut, c.logger)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	var f commands.OrderStatusUoWFactory = FuncOrderStatusUoWFactory(func() commands.OrderStatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetOrderStatusCommandHandler(f, c.fanOut)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelOrderUoWFactory = FuncCancelOrderUoWFactory(func() commands.CancelOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.fanOut)
}

func (c *CompositionRoot) CreateCreateDeliveryTaskCommandHandler() commands.CreateDeliveryTaskCommandHandler {
	var f commands.CreateTaskUoWFactory = FuncCreateTaskUoWFactory(func() commands.CreateTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryTaskCommandHandler(f, c.fanOut)
}

func (c *CompositionRoot) CreateClaimTaskCommandHandler() commands.ClaimTaskCommandHandler {
	var f commands.ClaimTaskUoWFactory = FuncClaimTaskUoWFactory(func() commands.ClaimTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimTaskCommandHandler(f, c.fanOut)
}

func (c *CompositionRoot) CreateSetTaskStatusCommandHandler() commands.SetTaskStatusCommandHandler {
	var f commands.TaskStatusUoWFactory = FuncTaskStatusUoWFactory(func() commands.TaskStatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetTaskStatusCommandHandler(f, c.fanOut)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateComputeRiderPayoutsCommandHandler() commands.ComputeRiderPayoutsCommandHandler {
	var f commands.RiderPayoutUoWFactory = FuncRiderPayoutUoWFactory(func() commands.RiderPayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewComputeRiderPayoutsCommandHandler(f, c.payoutRate, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersByReferenceQueryHandler() queries.GetOrdersByReferenceQueryHandler {
	return queries.NewGetOrdersByReferenceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenTasksQueryHandler() queries.GetOpenTasksQueryHandler {
	return queries.NewGetOpenTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadNotificationsQueryHandler() queries.GetUnreadNotificationsQueryHandler {
	return queries.NewGetUnreadNotificationsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound HTTP adapter over every handler.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCheckoutCommandHandler(),
		c.CreateVerifyPaymentCommandHandler(),
		c.CreateSetOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCreateDeliveryTaskCommandHandler(),
		c.CreateClaimTaskCommandHandler(),
		c.CreateSetTaskStatusCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateComputeRiderPayoutsCommandHandler(),
		c.CreateGetOrdersByReferenceQueryHandler(),
		c.CreateGetOpenTasksQueryHandler(),
		c.CreateGetUnreadNotificationsQueryHandler(),
		c.calculator,
	)
}

// CreateJobManager assembles the background jobs with the given schedule.
func (c *CompositionRoot) CreateJobManager(schedule string) *jobs.JobManager {
	if schedule == "" {
		schedule = jobs.DefaultRiderPayoutSchedule
	}
	return jobs.NewJobManager(c.CreateComputeRiderPayoutsCommandHandler(), schedule, c.logger)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncVerifyPaymentUoWFactory func() commands.VerifyPaymentUoW

func (f FuncVerifyPaymentUoWFactory) Create() commands.VerifyPaymentUoW {
	return f()
}

type FuncOrderStatusUoWFactory func() commands.OrderStatusUoW

func (f FuncOrderStatusUoWFactory) Create() commands.OrderStatusUoW {
	return f()
}

type FuncCancelOrderUoWFactory func() commands.CancelOrderUoW

func (f FuncCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return f()
}

type FuncCreateTaskUoWFactory func() commands.CreateTaskUoW

func (f FuncCreateTaskUoWFactory) Create() commands.CreateTaskUoW {
	return f()
}

type FuncClaimTaskUoWFactory func() commands.ClaimTaskUoW

func (f FuncClaimTaskUoWFactory) Create() commands.ClaimTaskUoW {
	return f()
}

type FuncTaskStatusUoWFactory func() commands.TaskStatusUoW

func (f FuncTaskStatusUoWFactory) Create() commands.TaskStatusUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncRiderPayoutUoWFactory func() commands.RiderPayoutUoW

func (f FuncRiderPayoutUoWFactory) Create() commands.RiderPayoutUoW {
	return f()
}
