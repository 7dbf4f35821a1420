package pricing

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// Landmark is one row of the landmark fee table: a named pickup cluster
// inside a zone with its per-vendor base delivery fee.
type Landmark struct {
	Name    string
	Zone    kernel.Zone
	BaseFee kernel.Money
}

// LandmarkCalculator prices carts with the multi-vendor landmark model.
//
// Business rules:
//   - Delivery fee = base fee for the landmark × number of vendors in the
//     cart (at least 1), minus a multi-vendor discount: 0 for one vendor,
//     500 for two, 800 for three or more. The fee never goes below zero.
//   - VAT is charged on the subtotal only; the delivery fee is untaxed.
//   - Commission is 10% of the subtotal and stays off the customer total.
type LandmarkCalculator struct {
	landmarks map[string]Landmark
}

// NewLandmarkCalculator creates a calculator over the given fee table. Passing
// no landmarks installs the built-in default table.
func NewLandmarkCalculator(landmarks []Landmark) LandmarkCalculator {
	if len(landmarks) == 0 {
		landmarks = DefaultLandmarks()
	}
	table := make(map[string]Landmark, len(landmarks))
	for _, lm := range landmarks {
		table[normalizeDestination(lm.Name)] = lm
	}
	return LandmarkCalculator{landmarks: table}
}

// Quote prices the cart for pickup around the named landmark.
func (c LandmarkCalculator) Quote(destination string, lines []CartLine) (Quote, error) {
	if err := validateCart(lines); err != nil {
		return Quote{}, err
	}

	landmark, ok := c.landmarks[normalizeDestination(destination)]
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown landmark %q", ErrInvalidDeliveryZone, destination)
	}

	vendorCount := vendorCountOf(lines)
	if vendorCount < 1 {
		vendorCount = 1
	}

	subtotal := subtotalOf(lines)
	deliveryFee := landmark.BaseFee.MulInt(vendorCount).SubFloorZero(multiVendorDiscount(vendorCount))
	vat := subtotal.MulRate(VATRate)

	return Quote{
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		VATAmount:        vat,
		CommissionAmount: commissionOf(subtotal),
		Total:            subtotal.Add(deliveryFee).Add(vat),
	}, nil
}

// ZoneFor resolves the matching zone for a landmark, used when a delivery
// task needs the rider-matching zone of the pickup location.
func (c LandmarkCalculator) ZoneFor(destination string) (kernel.Zone, error) {
	landmark, ok := c.landmarks[normalizeDestination(destination)]
	if !ok {
		return kernel.Zone{}, fmt.Errorf("%w: unknown landmark %q", ErrInvalidDeliveryZone, destination)
	}
	return landmark.Zone, nil
}

func multiVendorDiscount(vendorCount int64) kernel.Money {
	switch {
	case vendorCount >= 3:
		discount, _ := kernel.NewMoney(800)
		return discount
	case vendorCount == 2:
		discount, _ := kernel.NewMoney(500)
		return discount
	default:
		return kernel.ZeroMoney()
	}
}

// DefaultLandmarks is the built-in landmark fee table.
func DefaultLandmarks() []Landmark {
	return []Landmark{
		landmark("unilag", "yaba", 1000),
		landmark("yabatech", "yaba", 1000),
		landmark("ikeja city mall", "ikeja", 1200),
		landmark("computer village", "ikeja", 1200),
		landmark("lekki phase 1", "lekki", 1500),
		landmark("ajah market", "ajah", 1800),
		landmark("surulere stadium", "surulere", 1100),
	}
}

func landmark(name, zone string, baseFee int64) Landmark {
	z, _ := kernel.NewZone(zone)
	fee, _ := kernel.NewMoney(baseFee)
	return Landmark{Name: name, Zone: z, BaseFee: fee}
}
