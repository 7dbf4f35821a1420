package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetOrdersByReferenceQueryHandler looks up the orders a payment produced.
type GetOrdersByReferenceQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByReferenceQueryHandler creates a handler for order lookups by
// payment reference.
func NewGetOrdersByReferenceQueryHandler(db *gorm.DB) GetOrdersByReferenceQueryHandler {
	return GetOrdersByReferenceQueryHandler{db: db}
}

// Handle returns the orders materialized from the referenced payment,
// sorted by ID for stable output.
func (h GetOrdersByReferenceQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByReferenceQuery,
) ([]GetOrdersByReferenceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByReferenceQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			vendor_id,
			status,
			quantity,
			total_price
		FROM orders
		WHERE payment_reference = ?
		ORDER BY id
	`, query.Reference()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			vendorID   uuid.UUID
			status     string
			quantity   int
			totalPrice decimal.Decimal
		)

		if err = rows.Scan(&id, &vendorID, &status, &quantity, &totalPrice); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orderVendorID, idErr := kernel.UUIDFromBytes(vendorID[:])
		if idErr != nil {
			return nil, idErr
		}

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}

		totalMoney, moneyErr := kernel.MoneyFromDecimal(totalPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}

		orders = append(orders, GetOrdersByReferenceQueryResponse{
			ID:         orderID,
			VendorID:   orderVendorID,
			Status:     orderStatus,
			Quantity:   quantity,
			TotalPrice: totalMoney,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
