package payout

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// RiderPayoutStatus represents the settlement state of a weekly rider payout.
type RiderPayoutStatus int

const (
	// RiderPayoutUnknown represents an invalid or undefined status.
	RiderPayoutUnknown RiderPayoutStatus = iota

	// RiderPayoutPending means the weekly aggregate is computed but unpaid.
	RiderPayoutPending

	// RiderPayoutPaid means the rider was paid for the week.
	RiderPayoutPaid
)

func getRiderPayoutStatusStrings() map[RiderPayoutStatus]string {
	return map[RiderPayoutStatus]string{
		RiderPayoutUnknown: "unknown",
		RiderPayoutPending: "pending",
		RiderPayoutPaid:    "paid",
	}
}

// Validate checks that the status is one of the defined values.
func (s RiderPayoutStatus) Validate() error {
	if s != RiderPayoutPending && s != RiderPayoutPaid {
		return errs.NewValueIsInvalidErrorWithCause("rider payout status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer using the persisted lower-case form.
func (s RiderPayoutStatus) String() string {
	if str, ok := getRiderPayoutStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// RiderPayoutStatusFromString parses the persisted string form.
func RiderPayoutStatusFromString(s string) (RiderPayoutStatus, error) {
	for status, name := range getRiderPayoutStatusStrings() {
		if name == s && status != RiderPayoutUnknown {
			return status, nil
		}
	}
	return RiderPayoutUnknown, errs.NewValueIsInvalidErrorWithCause(
		"rider payout status", fmt.Errorf("%q is not a valid status", s))
}

// ErrRiderPayoutIsNotConstructed is returned when a RiderPayout was not
// created through its constructors.
var ErrRiderPayoutIsNotConstructed = errors.New("RiderPayout must be created via NewRiderPayout constructor")

// RiderPayout is one rider's aggregate payout for one ISO week: the count of
// Delivered tasks times a flat per-delivery rate. The pair (riderID,
// weekStart) is unique; re-running the weekly batch updates the existing row
// in place rather than duplicating it.
type RiderPayout struct {
	id                kernel.UUID
	riderID           kernel.UUID
	weekStart         time.Time
	weekEnd           time.Time
	totalDeliveries   int
	amountPerDelivery kernel.Money
	totalAmount       kernel.Money
	status            RiderPayoutStatus

	isConstructed bool
}

// NewRiderPayout creates a pending weekly payout. weekStart must be an ISO
// week boundary (Monday 00:00 UTC, see WeekStart); weekEnd is derived as the
// exclusive end of the week.
func NewRiderPayout(
	id kernel.UUID,
	riderID kernel.UUID,
	weekStart time.Time,
	totalDeliveries int,
	amountPerDelivery kernel.Money,
) (*RiderPayout, error) {
	if err := errors.Join(
		id.Validate(),
		riderID.Validate(),
		amountPerDelivery.Validate(),
	); err != nil {
		return nil, err
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalDeliveries", totalDeliveries, 0, int(^uint(0)>>1))
	}
	if !weekStart.Equal(WeekStart(weekStart)) {
		return nil, errs.NewValueIsInvalidErrorWithCause("weekStart",
			fmt.Errorf("%s is not an ISO week boundary", weekStart.Format(time.RFC3339)))
	}

	return &RiderPayout{
		id:                id,
		riderID:           riderID,
		weekStart:         weekStart,
		weekEnd:           weekStart.AddDate(0, 0, 7),
		totalDeliveries:   totalDeliveries,
		amountPerDelivery: amountPerDelivery,
		totalAmount:       amountPerDelivery.MulInt(int64(totalDeliveries)),
		status:            RiderPayoutPending,
		isConstructed:     true,
	}, nil
}

// RestoreRiderPayout reconstructs a weekly payout from persistence.
func RestoreRiderPayout(
	id kernel.UUID,
	riderID kernel.UUID,
	weekStart time.Time,
	totalDeliveries int,
	amountPerDelivery kernel.Money,
	status RiderPayoutStatus,
) (*RiderPayout, error) {
	p, err := NewRiderPayout(id, riderID, weekStart, totalDeliveries, amountPerDelivery)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	p.status = status

	return p, nil
}

// Validate ensures the payout was created through a constructor.
func (p *RiderPayout) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrRiderPayoutIsNotConstructed
	}
	return nil
}

// ID returns the payout's unique identifier.
func (p *RiderPayout) ID() kernel.UUID { return p.id }

// RiderID returns the rider being paid.
func (p *RiderPayout) RiderID() kernel.UUID { return p.riderID }

// WeekStart returns the inclusive start of the aggregated ISO week.
func (p *RiderPayout) WeekStart() time.Time { return p.weekStart }

// WeekEnd returns the exclusive end of the aggregated ISO week.
func (p *RiderPayout) WeekEnd() time.Time { return p.weekEnd }

// TotalDeliveries returns the number of Delivered tasks in the week.
func (p *RiderPayout) TotalDeliveries() int { return p.totalDeliveries }

// AmountPerDelivery returns the flat per-delivery rate applied.
func (p *RiderPayout) AmountPerDelivery() kernel.Money { return p.amountPerDelivery }

// TotalAmount returns deliveries × per-delivery rate.
func (p *RiderPayout) TotalAmount() kernel.Money { return p.totalAmount }

// Status returns the settlement status.
func (p *RiderPayout) Status() RiderPayoutStatus { return p.status }

// MarkPaid records that the rider was paid for the week.
func (p *RiderPayout) MarkPaid() {
	p.status = RiderPayoutPaid
}

// WeekStart truncates t to the start of its ISO week: Monday 00:00 UTC.
// Both the weekly batch and the uniqueness key use this boundary.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := int(t.Weekday())
	if day == 0 {
		day = 7 // Sunday belongs to the week that started the previous Monday
	}
	monday := t.AddDate(0, 0, -(day - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
