package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// PaymentRepository returns a PaymentRepository bound to the current transaction.
	PaymentRepository() PaymentRepository

	// DeliveryTaskRepository returns a DeliveryTaskRepository bound to the current transaction.
	DeliveryTaskRepository() DeliveryTaskRepository

	// VendorPayoutRepository returns a VendorPayoutRepository bound to the current transaction.
	VendorPayoutRepository() VendorPayoutRepository

	// RiderPayoutRepository returns a RiderPayoutRepository bound to the current transaction.
	RiderPayoutRepository() RiderPayoutRepository

	// NotificationRepository returns a NotificationRepository bound to the current transaction.
	NotificationRepository() NotificationRepository

	// VendorDirectory returns the read-only vendor profile view.
	VendorDirectory() VendorDirectory

	// RiderDirectory returns the read-only rider profile view.
	RiderDirectory() RiderDirectory
}
