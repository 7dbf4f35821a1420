package pricing

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// State is one row of the state fee table: a state with its flat delivery
// fee and the zone riders are matched in.
type State struct {
	Name    string
	Zone    kernel.Zone
	FlatFee kernel.Money
}

// StateCalculator prices carts with the flat per-state model.
//
// Business rules:
//   - Delivery fee is the state's flat fee regardless of vendor count.
//   - VAT is charged on subtotal plus delivery fee.
//   - Commission is 10% of the subtotal and stays off the customer total.
type StateCalculator struct {
	states map[string]State
}

// NewStateCalculator creates a calculator over the given fee table. Passing
// no states installs the built-in default table.
func NewStateCalculator(states []State) StateCalculator {
	if len(states) == 0 {
		states = DefaultStates()
	}
	table := make(map[string]State, len(states))
	for _, st := range states {
		table[normalizeDestination(st.Name)] = st
	}
	return StateCalculator{states: table}
}

// Quote prices the cart for delivery within the named state.
func (c StateCalculator) Quote(destination string, lines []CartLine) (Quote, error) {
	if err := validateCart(lines); err != nil {
		return Quote{}, err
	}

	state, ok := c.states[normalizeDestination(destination)]
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown state %q", ErrInvalidDeliveryZone, destination)
	}

	subtotal := subtotalOf(lines)
	deliveryFee := state.FlatFee
	vat := subtotal.Add(deliveryFee).MulRate(VATRate)

	return Quote{
		Subtotal:         subtotal,
		DeliveryFee:      deliveryFee,
		VATAmount:        vat,
		CommissionAmount: commissionOf(subtotal),
		Total:            subtotal.Add(deliveryFee).Add(vat),
	}, nil
}

// ZoneFor resolves the matching zone for a state.
func (c StateCalculator) ZoneFor(destination string) (kernel.Zone, error) {
	state, ok := c.states[normalizeDestination(destination)]
	if !ok {
		return kernel.Zone{}, fmt.Errorf("%w: unknown state %q", ErrInvalidDeliveryZone, destination)
	}
	return state.Zone, nil
}

// DefaultStates is the built-in state fee table.
func DefaultStates() []State {
	return []State{
		state("lagos", "lagos", 1500),
		state("ogun", "ogun", 2000),
		state("oyo", "oyo", 2500),
		state("rivers", "rivers", 3000),
		state("abuja", "abuja", 2500),
	}
}

func state(name, zone string, flatFee int64) State {
	z, _ := kernel.NewZone(zone)
	fee, _ := kernel.NewMoney(flatFee)
	return State{Name: name, Zone: z, FlatFee: fee}
}
