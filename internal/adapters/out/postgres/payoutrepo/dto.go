// Package payoutrepo persists vendor and rider payouts. Vendor payouts are
// unique per (payment, order) so a replayed verification webhook cannot
// credit a vendor twice; rider payouts are unique per (rider, week) so a
// rerun of the weekly batch recomputes in place.
package payoutrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
)

// VendorPayoutDTO is the database representation of a vendor payout.
type VendorPayoutDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VendorID  uuid.UUID       `gorm:"type:uuid;index"`
	PaymentID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_vendor_payouts_payment_order"`
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_vendor_payouts_payment_order"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status    string          `gorm:"type:varchar(16);index"`
}

// TableName overrides GORM's default naming to use "vendor_payouts".
func (VendorPayoutDTO) TableName() string {
	return "vendor_payouts"
}

// RiderPayoutDTO is the database representation of a rider's weekly payout.
type RiderPayoutDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RiderID           uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_rider_payouts_rider_week"`
	WeekStart         time.Time       `gorm:"uniqueIndex:idx_rider_payouts_rider_week"`
	TotalDeliveries   int             `gorm:"not null"`
	AmountPerDelivery decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status            string          `gorm:"type:varchar(16);index"`
}

// TableName overrides GORM's default naming to use "rider_payouts".
func (RiderPayoutDTO) TableName() string {
	return "rider_payouts"
}

func vendorPayoutFromDomain(aggregate *payout.VendorPayout) VendorPayoutDTO {
	return VendorPayoutDTO{
		ID:        aggregate.ID().Bytes(),
		VendorID:  aggregate.VendorID().Bytes(),
		PaymentID: aggregate.PaymentID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Amount:    aggregate.Amount().Amount(),
		Status:    aggregate.Status().String(),
	}
}

func vendorPayoutToDomain(dto VendorPayoutDTO) (*payout.VendorPayout, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	paymentID, err := kernel.UUIDFromBytes(dto.PaymentID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.MoneyFromDecimal(dto.Amount)
	if err != nil {
		return nil, err
	}

	status, err := payout.VendorPayoutStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payout.RestoreVendorPayout(id, vendorID, paymentID, orderID, amount, status)
}

func riderPayoutFromDomain(aggregate *payout.RiderPayout) RiderPayoutDTO {
	return RiderPayoutDTO{
		ID:                aggregate.ID().Bytes(),
		RiderID:           aggregate.RiderID().Bytes(),
		WeekStart:         aggregate.WeekStart(),
		TotalDeliveries:   aggregate.TotalDeliveries(),
		AmountPerDelivery: aggregate.AmountPerDelivery().Amount(),
		TotalAmount:       aggregate.TotalAmount().Amount(),
		Status:            aggregate.Status().String(),
	}
}

func riderPayoutToDomain(dto RiderPayoutDTO) (*payout.RiderPayout, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	amountPerDelivery, err := kernel.MoneyFromDecimal(dto.AmountPerDelivery)
	if err != nil {
		return nil, err
	}

	status, err := payout.RiderPayoutStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payout.RestoreRiderPayout(id, riderID, dto.WeekStart, dto.TotalDeliveries, amountPerDelivery, status)
}
