// Package ports defines repository and collaborator interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentReference retrieves every order created under one payment.
	// Payment verification transitions all of them together.
	GetByPaymentReference(ctx context.Context, reference string) ([]*order.Order, error)

	// GetAllByVendor retrieves all orders belonging to one vendor, newest
	// first. Used by the vendor-facing order listing.
	GetAllByVendor(ctx context.Context, vendorID kernel.UUID) ([]*order.Order, error)
}
