package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/core/domain/services/pricing"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the fulfillment API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler       commands.CheckoutCommandHandler
	verifyPaymentHandler  commands.VerifyPaymentCommandHandler
	setOrderStatusHandler commands.SetOrderStatusCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	createTaskHandler     commands.CreateDeliveryTaskCommandHandler
	claimTaskHandler      commands.ClaimTaskCommandHandler
	setTaskStatusHandler  commands.SetTaskStatusCommandHandler
	markReadHandler       commands.MarkNotificationReadCommandHandler
	riderPayoutsHandler   commands.ComputeRiderPayoutsCommandHandler

	// Query handlers
	ordersByReferenceHandler   queries.GetOrdersByReferenceQueryHandler
	openTasksHandler           queries.GetOpenTasksQueryHandler
	unreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler

	// Quoting without checkout
	calculator pricing.Calculator
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	verifyPaymentHandler commands.VerifyPaymentCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createTaskHandler commands.CreateDeliveryTaskCommandHandler,
	claimTaskHandler commands.ClaimTaskCommandHandler,
	setTaskStatusHandler commands.SetTaskStatusCommandHandler,
	markReadHandler commands.MarkNotificationReadCommandHandler,
	riderPayoutsHandler commands.ComputeRiderPayoutsCommandHandler,
	ordersByReferenceHandler queries.GetOrdersByReferenceQueryHandler,
	openTasksHandler queries.GetOpenTasksQueryHandler,
	unreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler,
	calculator pricing.Calculator,
) *Server {
	return &Server{
		checkoutHandler:            checkoutHandler,
		verifyPaymentHandler:       verifyPaymentHandler,
		setOrderStatusHandler:      setOrderStatusHandler,
		cancelOrderHandler:         cancelOrderHandler,
		createTaskHandler:          createTaskHandler,
		claimTaskHandler:           claimTaskHandler,
		setTaskStatusHandler:       setTaskStatusHandler,
		markReadHandler:            markReadHandler,
		riderPayoutsHandler:        riderPayoutsHandler,
		ordersByReferenceHandler:   ordersByReferenceHandler,
		openTasksHandler:           openTasksHandler,
		unreadNotificationsHandler: unreadNotificationsHandler,
		calculator:                 calculator,
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/pricing/quote", s.Quote)
	api.POST("/checkout", s.Checkout)
	api.POST("/payments/verify", s.VerifyPayment)
	api.GET("/orders", s.GetOrdersByReference)
	api.POST("/orders/:id/status", s.SetOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/delivery-task", s.CreateDeliveryTask)
	api.GET("/delivery-tasks", s.GetOpenTasks)
	api.POST("/delivery-tasks/:id/claim", s.ClaimTask)
	api.POST("/delivery-tasks/:id/status", s.SetTaskStatus)
	api.GET("/notifications", s.GetUnreadNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.POST("/payouts/riders/run", s.RunRiderPayouts)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Quote handles POST /api/v1/pricing/quote - prices a cart without opening
// a payment.
func (s *Server) Quote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]pricing.CartLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		vendorID, err := kernel.UUIDFromString(line.VendorID)
		if err != nil {
			return badRequest(ctx, "Invalid vendor id: "+line.VendorID)
		}
		productID, err := kernel.UUIDFromString(line.ProductID)
		if err != nil {
			return badRequest(ctx, "Invalid product id: "+line.ProductID)
		}
		unitPrice, err := kernel.MoneyFromString(line.UnitPrice)
		if err != nil {
			return badRequest(ctx, "Invalid unit price: "+line.UnitPrice)
		}

		lines = append(lines, pricing.CartLine{
			VendorID:  vendorID,
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}

	quote, err := s.calculator.Quote(req.Destination, lines)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		Subtotal:         quote.Subtotal.String(),
		DeliveryFee:      quote.DeliveryFee.String(),
		VATAmount:        quote.VATAmount.String(),
		CommissionAmount: quote.CommissionAmount.String(),
		Total:            quote.Total.String(),
	})
}

// Checkout handles POST /api/v1/checkout - prices the cart and opens a
// pending payment against the provider reference.
func (s *Server) Checkout(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+req.UserID)
	}

	lines := make([]commands.CheckoutLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		vendorID, lineErr := kernel.UUIDFromString(line.VendorID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid vendor id: "+line.VendorID)
		}
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+line.ProductID)
		}
		unitPrice, lineErr := kernel.MoneyFromString(line.UnitPrice)
		if lineErr != nil {
			return badRequest(ctx, "Invalid unit price: "+line.UnitPrice)
		}
		orderType, lineErr := order.TypeFromString(line.OrderType)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order type: "+line.OrderType)
		}

		lines = append(lines, commands.CheckoutLine{
			VendorID:  vendorID,
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			OrderType: orderType,
		})
	}

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		userID,
		req.Reference,
		req.Destination,
		lines,
		req.Address,
		req.Phone,
	)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	pmt, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		PaymentID:   pmt.ID().String(),
		Reference:   pmt.Reference(),
		Subtotal:    pmt.Subtotal().String(),
		DeliveryFee: pmt.DeliveryFee().String(),
		VATAmount:   pmt.TaxAmount().String(),
		TotalAmount: pmt.TotalAmount().String(),
		Status:      pmt.Status().String(),
	})
}

// VerifyPayment handles POST /api/v1/payments/verify - applies the payment
// provider's verdict for a reference.
func (s *Server) VerifyPayment(ctx echo.Context) error {
	var req VerifyPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyPaymentCommand(req.Reference, req.Verified)
	if err != nil {
		return badRequest(ctx, "Invalid verification data: "+err.Error())
	}

	if err := s.verifyPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrdersByReference handles GET /api/v1/orders?reference= - looks up the
// orders spawned by a payment reference.
func (s *Server) GetOrdersByReference(ctx echo.Context) error {
	query, err := queries.NewGetOrdersByReferenceQuery(ctx.QueryParam("reference"))
	if err != nil {
		return badRequest(ctx, "Invalid reference: "+err.Error())
	}

	orders, err := s.ordersByReferenceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderResponse{
			ID:         o.ID.String(),
			VendorID:   o.VendorID.String(),
			Status:     o.Status.String(),
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetOrderStatus handles POST /api/v1/orders/:id/status - a vendor's
// decision on one of its orders.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var req SetOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendor id: "+req.VendorID)
	}
	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid order status: "+req.Status)
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, vendorID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err := s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - a customer's
// withdrawal of an order before its delivery is claimed.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+req.UserID)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateDeliveryTask handles POST /api/v1/orders/:id/delivery-task - opens
// a delivery task for an accepted menu order.
func (s *Server) CreateDeliveryTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var req CreateDeliveryTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendor id: "+req.VendorID)
	}

	cmd, err := commands.NewCreateDeliveryTaskCommand(kernel.NewUUID(), orderID, vendorID)
	if err != nil {
		return badRequest(ctx, "Invalid task data: "+err.Error())
	}

	if err := s.createTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOpenTasks handles GET /api/v1/delivery-tasks?zone= - the feed of
// unclaimed tasks in a zone, oldest first.
func (s *Server) GetOpenTasks(ctx echo.Context) error {
	zone, err := kernel.NewZone(ctx.QueryParam("zone"))
	if err != nil {
		return badRequest(ctx, "Invalid zone: "+ctx.QueryParam("zone"))
	}

	query, err := queries.NewGetOpenTasksQuery(zone)
	if err != nil {
		return badRequest(ctx, "Invalid zone: "+err.Error())
	}

	tasks, err := s.openTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve delivery tasks")
	}

	response := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = TaskResponse{
			ID:             t.ID.String(),
			OrderID:        t.OrderID.String(),
			VendorLocation: t.VendorLocation.Name(),
			CreatedAt:      t.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimTask handles POST /api/v1/delivery-tasks/:id/claim - a rider's claim
// on a pending task. At most one claim succeeds per task.
func (s *Server) ClaimTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+ctx.Param("id"))
	}

	var req ClaimTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+req.RiderID)
	}

	cmd, err := commands.NewClaimTaskCommand(taskID, riderID)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	if err := s.claimTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// SetTaskStatus handles POST /api/v1/delivery-tasks/:id/status - a rider's
// progress report on a claimed task.
func (s *Server) SetTaskStatus(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid task id: "+ctx.Param("id"))
	}

	var req SetTaskStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+req.RiderID)
	}
	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid task status: "+req.Status)
	}

	cmd, err := commands.NewSetTaskStatusCommand(taskID, riderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err := s.setTaskStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetUnreadNotifications handles GET /api/v1/notifications?recipient= - the
// recipient's unread inbox, newest first.
func (s *Server) GetUnreadNotifications(ctx echo.Context) error {
	recipientID, err := kernel.UUIDFromString(ctx.QueryParam("recipient"))
	if err != nil {
		return badRequest(ctx, "Invalid recipient id: "+ctx.QueryParam("recipient"))
	}

	query, err := queries.NewGetUnreadNotificationsQuery(recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid recipient: "+err.Error())
	}

	notifications, err := s.unreadNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve notifications")
	}

	response := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = NotificationResponse{
			ID:        n.ID.String(),
			Kind:      string(n.Kind),
			Title:     n.Title,
			Message:   n.Message,
			Payload:   n.Payload,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read - the
// recipient dismisses one entry from the unread inbox.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid notification id: "+ctx.Param("id"))
	}

	var req MarkNotificationReadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	recipientID, err := kernel.UUIDFromString(req.RecipientID)
	if err != nil {
		return badRequest(ctx, "Invalid recipient id: "+req.RecipientID)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid read data: "+err.Error())
	}

	if err := s.markReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// RunRiderPayouts handles POST /api/v1/payouts/riders/run - recomputes the
// weekly rider payout batch for the week containing the given instant.
func (s *Server) RunRiderPayouts(ctx echo.Context) error {
	var req RunRiderPayoutsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = *req.At
	}

	cmd, err := commands.NewComputeRiderPayoutsCommand(at)
	if err != nil {
		return badRequest(ctx, "Invalid payout data: "+err.Error())
	}

	if err := s.riderPayoutsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError maps handler errors onto HTTP statuses. Anything unrecognized
// is reported as an internal error without leaking its text.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, commands.ErrVendorNotAuthorized),
		errors.Is(err, commands.ErrCustomerNotAuthorized),
		errors.Is(err, commands.ErrRiderOutsideZone),
		errors.Is(err, commands.ErrRecipientNotAuthorized),
		errors.Is(err, delivery.ErrRiderNotAssigned):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, delivery.ErrTaskAlreadyClaimed),
		errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderAlreadyTerminal),
		errors.Is(err, payment.ErrPaymentAlreadyTerminal),
		errors.Is(err, payout.ErrPayoutAlreadyExists),
		errors.Is(err, commands.ErrOrderInTransit),
		errors.Is(err, commands.ErrMenuOrderCompletesByDelivery),
		errors.Is(err, commands.ErrOrderNotAccepted),
		errors.Is(err, commands.ErrOrderNotDeliverable),
		errors.Is(err, commands.ErrTaskAlreadyExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, pricing.ErrEmptyCart),
		errors.Is(err, pricing.ErrInvalidDeliveryZone),
		errors.Is(err, commands.ErrStatusNotVendorSettable),
		errors.Is(err, commands.ErrStatusNotRiderSettable):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}
