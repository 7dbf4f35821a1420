// Package orderrepo persists the order ledger. It maps the order aggregate
// to its relational form and back, keeping the domain model free of GORM
// concerns.
package orderrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO is the database representation of an order. Statuses and types
// are stored in their string form so rows stay readable in psql.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VendorID         uuid.UUID       `gorm:"type:uuid;index"`
	UserID           uuid.UUID       `gorm:"type:uuid;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid"`
	Quantity         int             `gorm:"not null"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(14,2)"`
	VATAmount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status           string          `gorm:"type:varchar(16);index"`
	PaymentReference string          `gorm:"type:varchar(128);index"`
	DeliveryZone     string          `gorm:"type:varchar(64)"`
	OrderType        string          `gorm:"type:varchar(16)"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		VendorID:         aggregate.VendorID().Bytes(),
		UserID:           aggregate.UserID().Bytes(),
		ProductID:        aggregate.ProductID().Bytes(),
		Quantity:         aggregate.Quantity(),
		TotalPrice:       aggregate.TotalPrice().Amount(),
		VATAmount:        aggregate.VATAmount().Amount(),
		Status:           aggregate.Status().String(),
		PaymentReference: aggregate.PaymentReference(),
		DeliveryZone:     aggregate.DeliveryZone().Name(),
		OrderType:        aggregate.OrderType().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.MoneyFromDecimal(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	vatAmount, err := kernel.MoneyFromDecimal(dto.VATAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	zone, err := kernel.NewZone(dto.DeliveryZone)
	if err != nil {
		return nil, err
	}

	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, vendorID, userID, productID,
		dto.Quantity, totalPrice, vatAmount,
		status, dto.PaymentReference, zone, orderType,
	)
}
