package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidDeliveryZone is returned when the requested zone or landmark
	// is not present in the active calculator's fee table.
	ErrInvalidDeliveryZone = errors.New("invalid delivery zone")

	// ErrEmptyCart is returned when a quote is requested for a cart with no
	// lines or with lines that carry no quantity.
	ErrEmptyCart = errors.New("cart is empty")
)

// VATRate is the value-added tax applied to every quote. The calculators
// disagree only on the tax base, never on the rate.
var VATRate = decimal.RequireFromString("0.075")

// CommissionRate is the platform's cut of the subtotal. It is reported on
// the quote for bookkeeping but never added to the customer total.
var CommissionRate = decimal.RequireFromString("0.10")

// CartLine is one product entry in a checkout cart.
type CartLine struct {
	VendorID  kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() kernel.Money {
	return l.UnitPrice.MulInt(int64(l.Quantity))
}

// Quote is the priced breakdown of a cart.
//
// Total = Subtotal + DeliveryFee + VATAmount. CommissionAmount is platform
// revenue deducted from vendor payouts, not charged to the customer.
type Quote struct {
	Subtotal         kernel.Money
	DeliveryFee      kernel.Money
	VATAmount        kernel.Money
	CommissionAmount kernel.Money
	Total            kernel.Money
}

// Calculator prices a cart for a destination. Implementations are pure:
// same cart and destination always produce the same quote.
type Calculator interface {
	// Quote prices the cart for delivery to the named zone or landmark.
	// Returns ErrEmptyCart for carts with no effective lines and
	// ErrInvalidDeliveryZone when the destination is not in the fee table.
	Quote(destination string, lines []CartLine) (Quote, error)
}

// ZoneResolver maps a destination name to the zone riders are matched in.
// Both calculators implement it over their fee tables.
type ZoneResolver interface {
	ZoneFor(destination string) (kernel.Zone, error)
}

// normalizeDestination lower-cases and trims a destination name so fee table
// lookups match the same way zone matching does.
func normalizeDestination(destination string) string {
	return strings.ToLower(strings.TrimSpace(destination))
}

// subtotalOf sums line totals across all vendors. Lines with zero quantity
// contribute nothing.
func subtotalOf(lines []CartLine) kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

// vendorCountOf counts the distinct vendors represented in the cart.
func vendorCountOf(lines []CartLine) int64 {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		seen[line.VendorID.String()] = struct{}{}
	}
	return int64(len(seen))
}

func validateCart(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity > 0 {
			return nil
		}
	}
	return ErrEmptyCart
}

func commissionOf(subtotal kernel.Money) kernel.Money {
	return subtotal.MulRate(CommissionRate)
}
