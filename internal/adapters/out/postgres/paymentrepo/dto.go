// Package paymentrepo persists payment aggregates. The order intents and
// delivery details captured at checkout are stored as JSONB documents; they
// are written once and never queried relationally.
package paymentrepo

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payment"
)

// PaymentDTO is the database representation of a payment.
type PaymentDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;index"`
	Reference        string          `gorm:"type:varchar(128);uniqueIndex"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	TaxAmount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status           string          `gorm:"type:varchar(16);index"`
	OrderIntents     string          `gorm:"type:jsonb"`
	DeliveryDetails  string          `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

type orderIntentJSON struct {
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	OrderType string `json:"order_type"`
}

type deliveryDetailsJSON struct {
	Address string `json:"address"`
	Zone    string `json:"zone"`
	Phone   string `json:"phone"`
}

func fromDomain(aggregate *payment.Payment) (PaymentDTO, error) {
	intents := make([]orderIntentJSON, 0, len(aggregate.PendingOrders()))
	for _, intent := range aggregate.PendingOrders() {
		intents = append(intents, orderIntentJSON{
			VendorID:  intent.VendorID.String(),
			ProductID: intent.ProductID.String(),
			Quantity:  intent.Quantity,
			UnitPrice: intent.UnitPrice.Amount().String(),
			OrderType: intent.OrderType.String(),
		})
	}

	intentsRaw, err := json.Marshal(intents)
	if err != nil {
		return PaymentDTO{}, err
	}

	detailsRaw, err := json.Marshal(deliveryDetailsJSON{
		Address: aggregate.DeliveryDetails().Address,
		Zone:    aggregate.DeliveryDetails().Zone.Name(),
		Phone:   aggregate.DeliveryDetails().Phone,
	})
	if err != nil {
		return PaymentDTO{}, err
	}

	return PaymentDTO{
		ID:               aggregate.ID().Bytes(),
		UserID:           aggregate.UserID().Bytes(),
		Reference:        aggregate.Reference(),
		Subtotal:         aggregate.Subtotal().Amount(),
		DeliveryFee:      aggregate.DeliveryFee().Amount(),
		TaxAmount:        aggregate.TaxAmount().Amount(),
		CommissionAmount: aggregate.CommissionAmount().Amount(),
		TotalAmount:      aggregate.TotalAmount().Amount(),
		Status:           aggregate.Status().String(),
		OrderIntents:     string(intentsRaw),
		DeliveryDetails:  string(detailsRaw),
	}, nil
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.MoneyFromDecimal(dto.Subtotal)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.MoneyFromDecimal(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	taxAmount, err := kernel.MoneyFromDecimal(dto.TaxAmount)
	if err != nil {
		return nil, err
	}

	commissionAmount, err := kernel.MoneyFromDecimal(dto.CommissionAmount)
	if err != nil {
		return nil, err
	}

	totalAmount, err := kernel.MoneyFromDecimal(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	intents, err := intentsFromJSON(dto.OrderIntents)
	if err != nil {
		return nil, err
	}

	details, err := detailsFromJSON(dto.DeliveryDetails)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, userID, dto.Reference,
		subtotal, deliveryFee, taxAmount, commissionAmount, totalAmount,
		status, intents, details,
	)
}

func intentsFromJSON(raw string) ([]payment.OrderIntent, error) {
	var decoded []orderIntentJSON
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	intents := make([]payment.OrderIntent, 0, len(decoded))
	for _, entry := range decoded {
		vendorID, err := kernel.UUIDFromString(entry.VendorID)
		if err != nil {
			return nil, err
		}

		productID, err := kernel.UUIDFromString(entry.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.MoneyFromString(entry.UnitPrice)
		if err != nil {
			return nil, err
		}

		orderType, err := order.TypeFromString(entry.OrderType)
		if err != nil {
			return nil, err
		}

		intents = append(intents, payment.OrderIntent{
			VendorID:  vendorID,
			ProductID: productID,
			Quantity:  entry.Quantity,
			UnitPrice: unitPrice,
			OrderType: orderType,
		})
	}

	return intents, nil
}

func detailsFromJSON(raw string) (payment.DeliveryDetails, error) {
	var decoded deliveryDetailsJSON
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return payment.DeliveryDetails{}, err
	}

	zone, err := kernel.NewZone(decoded.Zone)
	if err != nil {
		return payment.DeliveryDetails{}, err
	}

	return payment.DeliveryDetails{
		Address: decoded.Address,
		Zone:    zone,
		Phone:   decoded.Phone,
	}, nil
}
