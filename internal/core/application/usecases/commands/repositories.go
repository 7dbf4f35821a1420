// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each command declares the narrowest unit of work it needs, so tests mock
// only the repositories the handler actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// DeliveryTaskRepoFactory provides access to the delivery task repository within a transaction.
	DeliveryTaskRepoFactory interface {
		DeliveryTaskRepository() ports.DeliveryTaskRepository
	}

	// VendorPayoutRepoFactory provides access to the vendor payout repository within a transaction.
	VendorPayoutRepoFactory interface {
		VendorPayoutRepository() ports.VendorPayoutRepository
	}

	// RiderPayoutRepoFactory provides access to the rider payout repository within a transaction.
	RiderPayoutRepoFactory interface {
		RiderPayoutRepository() ports.RiderPayoutRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// DirectoryFactory provides the read-only vendor and rider profile views.
	DirectoryFactory interface {
		VendorDirectory() ports.VendorDirectory
		RiderDirectory() ports.RiderDirectory
	}

	// CheckoutUoW manages transactions for checkout, which only creates a
	// pending payment. Orders materialize later, on verification.
	CheckoutUoW interface {
		TxManager
		PaymentRepoFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// VerifyPaymentUoW spans the whole payment-success workflow: flip the
	// payment, materialize orders, credit vendors, notify them.
	VerifyPaymentUoW interface {
		TxManager
		PaymentRepoFactory
		OrderRepoFactory
		VendorPayoutRepoFactory
		NotificationRepoFactory
	}

	// VerifyPaymentUoWFactory creates verify-payment unit of work instances.
	VerifyPaymentUoWFactory interface {
		Create() VerifyPaymentUoW
	}

	// OrderStatusUoW manages vendor-driven order transitions, the fencing
	// of a linked delivery task, and the notifications they owe.
	OrderStatusUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryTaskRepoFactory
		NotificationRepoFactory
	}

	// OrderStatusUoWFactory creates order status unit of work instances.
	OrderStatusUoWFactory interface {
		Create() OrderStatusUoW
	}

	// CancelOrderUoW spans order cancellation and the fencing of a linked
	// delivery task that has not been picked up yet.
	CancelOrderUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryTaskRepoFactory
		NotificationRepoFactory
	}

	// CancelOrderUoWFactory creates cancel order unit of work instances.
	CancelOrderUoWFactory interface {
		Create() CancelOrderUoW
	}

	// CreateTaskUoW spans task creation: order check, vendor zone lookup,
	// task insert, rider fan-out.
	CreateTaskUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryTaskRepoFactory
		NotificationRepoFactory
		DirectoryFactory
	}

	// CreateTaskUoWFactory creates task creation unit of work instances.
	CreateTaskUoWFactory interface {
		Create() CreateTaskUoW
	}

	// ClaimTaskUoW spans the atomic claim and its notifications.
	ClaimTaskUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryTaskRepoFactory
		NotificationRepoFactory
		DirectoryFactory
	}

	// ClaimTaskUoWFactory creates claim unit of work instances.
	ClaimTaskUoWFactory interface {
		Create() ClaimTaskUoW
	}

	// TaskStatusUoW spans rider-driven task progress and, on delivery, the
	// completion of the linked order.
	TaskStatusUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryTaskRepoFactory
		NotificationRepoFactory
	}

	// TaskStatusUoWFactory creates task status unit of work instances.
	TaskStatusUoWFactory interface {
		Create() TaskStatusUoW
	}

	// NotificationUoW spans single-notification updates such as marking
	// one read.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// RiderPayoutUoW spans the weekly payout batch.
	RiderPayoutUoW interface {
		TxManager
		DeliveryTaskRepoFactory
		RiderPayoutRepoFactory
	}

	// RiderPayoutUoWFactory creates rider payout unit of work instances.
	RiderPayoutUoWFactory interface {
		Create() RiderPayoutUoW
	}
)
