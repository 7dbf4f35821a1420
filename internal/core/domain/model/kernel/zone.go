package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when attempting to use an improperly
// initialized Zone. Zones must be created via NewZone.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("zone must be created via NewZone constructor")

// Zone is a coarse geographic region identifier. It serves two purposes in
// the engine: delivery-fee lookup during pricing and rider-to-vendor matching
// during dispatch. A rider may only claim delivery tasks whose vendor location
// equals the rider's own zone.
//
// Zone equality is case-insensitive; the canonical form is lower case.
type Zone struct { //nolint:recvcheck //using for validation
	name  string
	guard guard.ConstructorGuard
}

// NewZone creates a Zone from its name. The name must be non-blank.
func NewZone(name string) (Zone, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone name")
	}

	return Zone{
		name:  trimmed,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Zone was created through NewZone.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// Name returns the canonical (lower-case) zone name.
func (z Zone) Name() string {
	return z.name
}

// IsEqual reports whether two zones identify the same region.
func (z Zone) IsEqual(other Zone) bool {
	return z.name == other.name
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return z.name
}
