package http

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CartLineRequest is one cart entry in a quote or checkout request.
type CartLineRequest struct {
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	OrderType string `json:"order_type"`
}

// QuoteRequest prices a cart without committing to anything.
type QuoteRequest struct {
	Destination string            `json:"destination"`
	Lines       []CartLineRequest `json:"lines"`
}

// QuoteResponse is the priced breakdown of a cart.
type QuoteResponse struct {
	Subtotal         string `json:"subtotal"`
	DeliveryFee      string `json:"delivery_fee"`
	VATAmount        string `json:"vat_amount"`
	CommissionAmount string `json:"commission_amount"`
	Total            string `json:"total"`
}

// CheckoutRequest opens a pending payment for a cart.
type CheckoutRequest struct {
	UserID      string            `json:"user_id"`
	Reference   string            `json:"reference"`
	Destination string            `json:"destination"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Lines       []CartLineRequest `json:"lines"`
}

// CheckoutResponse reports the opened payment.
type CheckoutResponse struct {
	PaymentID   string `json:"payment_id"`
	Reference   string `json:"reference"`
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	VATAmount   string `json:"vat_amount"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
}

// VerifyPaymentRequest reports the provider's verdict for a reference.
type VerifyPaymentRequest struct {
	Reference string `json:"reference"`
	Verified  bool   `json:"verified"`
}

// SetOrderStatusRequest is a vendor's decision on an order.
type SetOrderStatusRequest struct {
	VendorID string `json:"vendor_id"`
	Status   string `json:"status"`
}

// CancelOrderRequest is a customer's withdrawal of an order.
type CancelOrderRequest struct {
	UserID string `json:"user_id"`
}

// CreateDeliveryTaskRequest opens a delivery task for an accepted order.
type CreateDeliveryTaskRequest struct {
	VendorID string `json:"vendor_id"`
}

// ClaimTaskRequest is a rider's claim on a pending task.
type ClaimTaskRequest struct {
	RiderID string `json:"rider_id"`
}

// SetTaskStatusRequest is a rider's progress report on a claimed task.
type SetTaskStatusRequest struct {
	RiderID string `json:"rider_id"`
	Status  string `json:"status"`
}

// OrderResponse is one order in a lookup result.
type OrderResponse struct {
	ID         string `json:"id"`
	VendorID   string `json:"vendor_id"`
	Status     string `json:"status"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
}

// TaskResponse is one unclaimed task in the zone feed.
type TaskResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	VendorLocation string    `json:"vendor_location"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationResponse is one unread inbox entry.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarkNotificationReadRequest dismisses one entry from the unread feed.
type MarkNotificationReadRequest struct {
	RecipientID string `json:"recipient_id"`
}

// RunRiderPayoutsRequest triggers the weekly payout batch for the week
// containing at; empty means the current week.
type RunRiderPayoutsRequest struct {
	At *time.Time `json:"at,omitempty"`
}
