package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrdersByReferenceQueryIsNotConstructed = errors.New(
		"GetOrdersByReferenceQuery must be created via NewGetOrdersByReferenceQuery constructor",
	)
	ErrReferenceIsEmpty = errors.New("payment reference is empty")
)

// GetOrdersByReferenceQuery retrieves the orders materialized from one
// payment, identified by the gateway reference. A customer uses it to see
// what a checkout produced.
type GetOrdersByReferenceQuery struct { //nolint:recvcheck //using for validation
	reference string

	guard guard.ConstructorGuard
}

// NewGetOrdersByReferenceQuery creates an order lookup query for a payment
// reference.
func NewGetOrdersByReferenceQuery(reference string) (GetOrdersByReferenceQuery, error) {
	q := GetOrdersByReferenceQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setReference(reference); err != nil {
		return GetOrdersByReferenceQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByReferenceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByReferenceQueryIsNotConstructed)
}

// Reference returns the gateway payment reference.
func (q GetOrdersByReferenceQuery) Reference() string { return q.reference }

func (q *GetOrdersByReferenceQuery) setReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return ErrReferenceIsEmpty
	}

	q.reference = reference
	return nil
}

// GetOrdersByReferenceQueryResponse is one order produced by a payment.
type GetOrdersByReferenceQueryResponse struct {
	ID         kernel.UUID
	VendorID   kernel.UUID
	Status     order.Status
	Quantity   int
	TotalPrice kernel.Money
}
