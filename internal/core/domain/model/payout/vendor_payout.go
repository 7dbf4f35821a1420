package payout

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// VendorShareRate is the fraction of an order's goods value paid out to the
// vendor; the complementary 10% is the platform commission.
var VendorShareRate = decimal.RequireFromString("0.90")

// VendorPayoutStatus represents the settlement state of a vendor payout.
type VendorPayoutStatus int

const (
	// VendorPayoutUnknown represents an invalid or undefined status.
	VendorPayoutUnknown VendorPayoutStatus = iota

	// VendorPayoutPending means the payout is owed but not yet settled.
	VendorPayoutPending

	// VendorPayoutCompleted means the payout was settled out-of-band.
	VendorPayoutCompleted

	// VendorPayoutFailed means settlement failed and needs intervention.
	VendorPayoutFailed
)

func getVendorPayoutStatusStrings() map[VendorPayoutStatus]string {
	return map[VendorPayoutStatus]string{
		VendorPayoutUnknown:   "unknown",
		VendorPayoutPending:   "pending",
		VendorPayoutCompleted: "completed",
		VendorPayoutFailed:    "failed",
	}
}

// Validate checks that the status is one of the defined values.
func (s VendorPayoutStatus) Validate() error {
	if s == VendorPayoutUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vendor payout status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getVendorPayoutStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vendor payout status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer using the persisted lower-case form.
func (s VendorPayoutStatus) String() string {
	if str, ok := getVendorPayoutStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// VendorPayoutStatusFromString parses the persisted string form.
func VendorPayoutStatusFromString(s string) (VendorPayoutStatus, error) {
	for status, name := range getVendorPayoutStatusStrings() {
		if name == s && status != VendorPayoutUnknown {
			return status, nil
		}
	}
	return VendorPayoutUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vendor payout status", fmt.Errorf("%q is not a valid status", s))
}

// ErrVendorPayoutIsNotConstructed is returned when a VendorPayout was not
// created through its constructors.
var ErrVendorPayoutIsNotConstructed = errors.New("VendorPayout must be created via NewVendorPayout constructor")

// ErrPayoutAlreadyExists is returned by storage when a payout for the same
// payment and order was already recorded. Callers treat it as success.
var ErrPayoutAlreadyExists = errors.New("payout already exists")

// VendorPayout is the money owed to a vendor for one completed order under
// one payment. The pair (paymentID, orderID) is unique: the row is created
// exactly once when the payment succeeds, and duplicate trigger firings are
// suppressed by the storage layer's uniqueness constraint.
type VendorPayout struct {
	id        kernel.UUID
	vendorID  kernel.UUID
	paymentID kernel.UUID
	orderID   kernel.UUID
	amount    kernel.Money
	status    VendorPayoutStatus

	isConstructed bool
}

// NewVendorPayout creates a pending payout of 90% of the order's goods value.
func NewVendorPayout(
	id kernel.UUID,
	vendorID kernel.UUID,
	paymentID kernel.UUID,
	orderID kernel.UUID,
	orderTotal kernel.Money,
) (*VendorPayout, error) {
	if err := errors.Join(
		id.Validate(),
		vendorID.Validate(),
		paymentID.Validate(),
		orderID.Validate(),
		orderTotal.Validate(),
	); err != nil {
		return nil, err
	}

	return &VendorPayout{
		id:            id,
		vendorID:      vendorID,
		paymentID:     paymentID,
		orderID:       orderID,
		amount:        orderTotal.MulRate(VendorShareRate),
		status:        VendorPayoutPending,
		isConstructed: true,
	}, nil
}

// RestoreVendorPayout reconstructs a payout from persistence with its exact
// stored amount and status.
func RestoreVendorPayout(
	id kernel.UUID,
	vendorID kernel.UUID,
	paymentID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	status VendorPayoutStatus,
) (*VendorPayout, error) {
	if err := errors.Join(
		id.Validate(),
		vendorID.Validate(),
		paymentID.Validate(),
		orderID.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &VendorPayout{
		id:            id,
		vendorID:      vendorID,
		paymentID:     paymentID,
		orderID:       orderID,
		amount:        amount,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the payout was created through a constructor.
func (p *VendorPayout) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrVendorPayoutIsNotConstructed
	}
	return nil
}

// ID returns the payout's unique identifier.
func (p *VendorPayout) ID() kernel.UUID { return p.id }

// VendorID returns the vendor being paid.
func (p *VendorPayout) VendorID() kernel.UUID { return p.vendorID }

// PaymentID returns the payment that funded the payout.
func (p *VendorPayout) PaymentID() kernel.UUID { return p.paymentID }

// OrderID returns the order the payout settles.
func (p *VendorPayout) OrderID() kernel.UUID { return p.orderID }

// Amount returns the payout amount (order goods value × 0.9).
func (p *VendorPayout) Amount() kernel.Money { return p.amount }

// Status returns the settlement status.
func (p *VendorPayout) Status() VendorPayoutStatus { return p.status }

// MarkCompleted records out-of-band settlement.
func (p *VendorPayout) MarkCompleted() {
	p.status = VendorPayoutCompleted
}

// MarkFailed records a failed settlement attempt.
func (p *VendorPayout) MarkFailed() {
	p.status = VendorPayoutFailed
}
