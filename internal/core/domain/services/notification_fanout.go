package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
)

// NotificationFanOut is a domain service that maps a committed state
// transition to the set of notifications owed to interested parties.
//
// The mapping is pure: it builds notifications but does not persist them.
// Callers insert the result in the same transaction as the transition, and
// the storage dedupe on (event key, recipient) keeps retried transitions
// at-most-once per recipient.
//
// Event keys are "<kind>:<subject id>", so a given transition of a given
// entity always produces the same key no matter how often it is replayed.
type NotificationFanOut struct{}

// NewNotificationFanOut creates a new NotificationFanOut instance.
func NewNotificationFanOut() NotificationFanOut {
	return NotificationFanOut{}
}

// OrderPaid notifies the vendor that a paid order is waiting for acceptance.
func (f NotificationFanOut) OrderPaid(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(
		o.VendorID(),
		notification.AudienceVendor,
		"New order received",
		fmt.Sprintf("You have a new paid order of %d item(s) worth %s.", o.Quantity(), o.TotalPrice()),
		notification.OrderPaidPayload{
			OrderID:          o.ID().String(),
			PaymentReference: o.PaymentReference(),
			TotalPrice:       o.TotalPrice().String(),
			Quantity:         o.Quantity(),
		},
		eventKey(notification.KindOrderPaid, o.ID()),
	)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// OrderAccepted notifies the customer that the vendor accepted their order.
func (f NotificationFanOut) OrderAccepted(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(
		o.UserID(),
		notification.AudienceCustomer,
		"Order accepted",
		"Your order has been accepted and is being prepared.",
		notification.OrderAcceptedPayload{
			OrderID:  o.ID().String(),
			VendorID: o.VendorID().String(),
		},
		eventKey(notification.KindOrderAccepted, o.ID()),
	)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// OrderRejected notifies the customer that the vendor declined their order.
func (f NotificationFanOut) OrderRejected(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(
		o.UserID(),
		notification.AudienceCustomer,
		"Order rejected",
		"Your order was rejected by the vendor. You will not be charged for it.",
		notification.OrderRejectedPayload{
			OrderID:  o.ID().String(),
			VendorID: o.VendorID().String(),
		},
		eventKey(notification.KindOrderRejected, o.ID()),
	)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// OrderConfirmed notifies the customer that their order is ready.
func (f NotificationFanOut) OrderConfirmed(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(
		o.UserID(),
		notification.AudienceCustomer,
		"Order ready",
		"Your order has been prepared and is ready.",
		notification.OrderConfirmedPayload{OrderID: o.ID().String()},
		eventKey(notification.KindOrderConfirmed, o.ID()),
	)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// OrderCompleted notifies the customer and the vendor that the order closed.
func (f NotificationFanOut) OrderCompleted(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	payload := notification.OrderCompletedPayload{OrderID: o.ID().String()}
	key := eventKey(notification.KindOrderCompleted, o.ID())

	toCustomer, err := notification.NewNotification(
		o.UserID(), notification.AudienceCustomer,
		"Order completed",
		"Your order has been completed. Thank you for your purchase.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	toVendor, err := notification.NewNotification(
		o.VendorID(), notification.AudienceVendor,
		"Order completed",
		"An order has been completed and counts toward your payout.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	return []*notification.Notification{toCustomer, toVendor}, nil
}

// OrderCancelled notifies the customer and the vendor of a cancellation.
func (f NotificationFanOut) OrderCancelled(o *order.Order) ([]*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	payload := notification.OrderCancelledPayload{OrderID: o.ID().String()}
	key := eventKey(notification.KindOrderCancelled, o.ID())

	toCustomer, err := notification.NewNotification(
		o.UserID(), notification.AudienceCustomer,
		"Order cancelled",
		"Your order has been cancelled.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	toVendor, err := notification.NewNotification(
		o.VendorID(), notification.AudienceVendor,
		"Order cancelled",
		"An order has been cancelled and will not be fulfilled.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	return []*notification.Notification{toCustomer, toVendor}, nil
}

// TaskCreated notifies every rider in the task's zone that a delivery is up
// for grabs. Riders outside the zone get nothing.
func (f NotificationFanOut) TaskCreated(
	task *delivery.Task,
	ridersInZone []kernel.UUID,
) ([]*notification.Notification, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	payload := notification.TaskCreatedPayload{
		TaskID:         task.ID().String(),
		VendorLocation: task.VendorLocation().Name(),
	}
	key := eventKey(notification.KindTaskCreated, task.ID())

	notifications := make([]*notification.Notification, 0, len(ridersInZone))
	for _, riderID := range ridersInZone {
		n, err := notification.NewNotification(
			riderID, notification.AudienceRider,
			"New delivery available",
			fmt.Sprintf("A delivery around %s is available to claim.", task.VendorLocation()),
			payload, key,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// TaskAssigned notifies the vendor and the customer that a rider claimed the
// task. The order supplies the customer identity the task does not carry.
func (f NotificationFanOut) TaskAssigned(
	task *delivery.Task,
	o *order.Order,
) ([]*notification.Notification, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if task.RiderID() == nil {
		return nil, delivery.ErrRiderNotAssigned
	}

	payload := notification.TaskAssignedPayload{
		TaskID:  task.ID().String(),
		OrderID: task.OrderID().String(),
		RiderID: task.RiderID().String(),
	}
	key := eventKey(notification.KindTaskAssigned, task.ID())

	toVendor, err := notification.NewNotification(
		task.VendorID(), notification.AudienceVendor,
		"Rider assigned",
		"A rider has accepted the delivery and is on the way to pick it up.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	toCustomer, err := notification.NewNotification(
		o.UserID(), notification.AudienceCustomer,
		"Rider assigned",
		"A rider has been assigned to deliver your order.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	return []*notification.Notification{toVendor, toCustomer}, nil
}

// TaskPickedUp notifies the customer that the rider collected the order.
func (f NotificationFanOut) TaskPickedUp(
	task *delivery.Task,
	o *order.Order,
) ([]*notification.Notification, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(
		o.UserID(), notification.AudienceCustomer,
		"Order picked up",
		"Your order has been picked up and is on its way.",
		notification.TaskPickedUpPayload{
			TaskID:  task.ID().String(),
			OrderID: task.OrderID().String(),
		},
		eventKey(notification.KindTaskPickedUp, task.ID()),
	)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

// TaskDelivered notifies the customer and the vendor that delivery finished.
func (f NotificationFanOut) TaskDelivered(
	task *delivery.Task,
	o *order.Order,
) ([]*notification.Notification, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if task.RiderID() == nil {
		return nil, delivery.ErrRiderNotAssigned
	}

	payload := notification.TaskDeliveredPayload{
		TaskID:  task.ID().String(),
		OrderID: task.OrderID().String(),
		RiderID: task.RiderID().String(),
	}
	key := eventKey(notification.KindTaskDelivered, task.ID())

	toCustomer, err := notification.NewNotification(
		o.UserID(), notification.AudienceCustomer,
		"Order delivered",
		"Your order has been delivered. Enjoy!",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	toVendor, err := notification.NewNotification(
		task.VendorID(), notification.AudienceVendor,
		"Order delivered",
		"The rider has delivered the order to the customer.",
		payload, key,
	)
	if err != nil {
		return nil, err
	}

	return []*notification.Notification{toCustomer, toVendor}, nil
}

func eventKey(kind notification.Kind, subjectID kernel.UUID) string {
	return fmt.Sprintf("%s:%s", kind, subjectID)
}
