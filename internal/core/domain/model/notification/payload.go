package notification

import (
	"encoding/json"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Kind identifies the event a notification reports. It doubles as the tag of
// the payload union: each Kind has exactly one payload type.
type Kind string

const (
	KindOrderPaid      Kind = "order_paid"
	KindOrderAccepted  Kind = "order_accepted"
	KindOrderRejected  Kind = "order_rejected"
	KindOrderConfirmed Kind = "order_confirmed"
	KindOrderCompleted Kind = "order_completed"
	KindOrderCancelled Kind = "order_cancelled"
	KindTaskCreated    Kind = "task_created"
	KindTaskAssigned   Kind = "task_assigned"
	KindTaskPickedUp   Kind = "task_picked_up"
	KindTaskDelivered  Kind = "task_delivered"
)

// Validate checks that the Kind is one of the defined event kinds.
func (k Kind) Validate() error {
	switch k {
	case KindOrderPaid, KindOrderAccepted, KindOrderRejected, KindOrderConfirmed,
		KindOrderCompleted, KindOrderCancelled,
		KindTaskCreated, KindTaskAssigned, KindTaskPickedUp, KindTaskDelivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("notification kind",
			fmt.Errorf("%q is not a valid kind", string(k)))
	}
}

// Payload is the strongly-typed data attached to a notification. Each Kind
// has its own payload struct; the union replaces the loosely-typed JSON
// metadata of earlier designs.
type Payload interface {
	Kind() Kind
}

// OrderPaidPayload accompanies the "new order" notification sent to a vendor
// when payment for one of their orders is verified.
type OrderPaidPayload struct {
	OrderID          string `json:"order_id"`
	PaymentReference string `json:"payment_reference"`
	TotalPrice       string `json:"total_price"`
	Quantity         int    `json:"quantity"`
}

func (OrderPaidPayload) Kind() Kind { return KindOrderPaid }

// OrderAcceptedPayload accompanies the customer notification when a vendor
// accepts their order.
type OrderAcceptedPayload struct {
	OrderID  string `json:"order_id"`
	VendorID string `json:"vendor_id"`
}

func (OrderAcceptedPayload) Kind() Kind { return KindOrderAccepted }

// OrderRejectedPayload accompanies the customer notification when a vendor
// declines their order.
type OrderRejectedPayload struct {
	OrderID  string `json:"order_id"`
	VendorID string `json:"vendor_id"`
}

func (OrderRejectedPayload) Kind() Kind { return KindOrderRejected }

// OrderConfirmedPayload accompanies the customer notification when a vendor
// marks the order prepared.
type OrderConfirmedPayload struct {
	OrderID string `json:"order_id"`
}

func (OrderConfirmedPayload) Kind() Kind { return KindOrderConfirmed }

// OrderCompletedPayload accompanies the completion notification.
type OrderCompletedPayload struct {
	OrderID string `json:"order_id"`
}

func (OrderCompletedPayload) Kind() Kind { return KindOrderCompleted }

// OrderCancelledPayload accompanies cancellation notifications.
type OrderCancelledPayload struct {
	OrderID string `json:"order_id"`
}

func (OrderCancelledPayload) Kind() Kind { return KindOrderCancelled }

// TaskCreatedPayload accompanies the zone-wide rider notification when a new
// delivery task becomes claimable.
type TaskCreatedPayload struct {
	TaskID         string `json:"task_id"`
	VendorLocation string `json:"vendor_location"`
}

func (TaskCreatedPayload) Kind() Kind { return KindTaskCreated }

// TaskAssignedPayload accompanies vendor and customer notifications when a
// rider claims the task.
type TaskAssignedPayload struct {
	TaskID  string `json:"task_id"`
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

func (TaskAssignedPayload) Kind() Kind { return KindTaskAssigned }

// TaskPickedUpPayload accompanies the customer notification when the rider
// collects the order.
type TaskPickedUpPayload struct {
	TaskID  string `json:"task_id"`
	OrderID string `json:"order_id"`
}

func (TaskPickedUpPayload) Kind() Kind { return KindTaskPickedUp }

// TaskDeliveredPayload accompanies vendor and customer notifications when
// delivery completes.
type TaskDeliveredPayload struct {
	TaskID  string `json:"task_id"`
	OrderID string `json:"order_id"`
	RiderID string `json:"rider_id"`
}

func (TaskDeliveredPayload) Kind() Kind { return KindTaskDelivered }

// MarshalPayload serializes a payload to its JSON column form.
func MarshalPayload(p Payload) ([]byte, error) {
	if p == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	return json.Marshal(p)
}

// UnmarshalPayload deserializes a JSON column back into the payload type
// selected by kind.
func UnmarshalPayload(kind Kind, data []byte) (Payload, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var target Payload
	switch kind {
	case KindOrderPaid:
		target = &OrderPaidPayload{}
	case KindOrderAccepted:
		target = &OrderAcceptedPayload{}
	case KindOrderRejected:
		target = &OrderRejectedPayload{}
	case KindOrderConfirmed:
		target = &OrderConfirmedPayload{}
	case KindOrderCompleted:
		target = &OrderCompletedPayload{}
	case KindOrderCancelled:
		target = &OrderCancelledPayload{}
	case KindTaskCreated:
		target = &TaskCreatedPayload{}
	case KindTaskAssigned:
		target = &TaskAssignedPayload{}
	case KindTaskPickedUp:
		target = &TaskPickedUpPayload{}
	case KindTaskDelivered:
		target = &TaskDeliveredPayload{}
	}

	if err := json.Unmarshal(data, target); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("notification payload", err)
	}

	// Return the value, not the pointer, so payloads stay comparable.
	switch v := target.(type) {
	case *OrderPaidPayload:
		return *v, nil
	case *OrderAcceptedPayload:
		return *v, nil
	case *OrderRejectedPayload:
		return *v, nil
	case *OrderConfirmedPayload:
		return *v, nil
	case *OrderCompletedPayload:
		return *v, nil
	case *OrderCancelledPayload:
		return *v, nil
	case *TaskCreatedPayload:
		return *v, nil
	case *TaskAssignedPayload:
		return *v, nil
	case *TaskPickedUpPayload:
		return *v, nil
	case *TaskDeliveredPayload:
		return *v, nil
	default:
		return nil, errs.NewValueIsInvalidError("notification payload")
	}
}
