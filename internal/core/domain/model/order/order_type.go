package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type distinguishes the two fulfillment flows an order can follow.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	TypeUnknown Type = iota

	// TypeMenu is a delivery order: completion is driven by the delivery
	// dispatch machine reaching Delivered.
	TypeMenu

	// TypeService is a pickup order: the vendor completes it directly
	// through Confirmed.
	TypeService
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "unknown",
		TypeMenu:    "menu",
		TypeService: "service",
	}
}

// Validate checks that the Type is one of the defined values.
func (t Type) Validate() error {
	if t != TypeMenu && t != TypeService {
		return errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "unknown".
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// TypeFromString parses the persisted string form of an order type.
func TypeFromString(s string) (Type, error) {
	switch s {
	case "menu":
		return TypeMenu, nil
	case "service":
		return TypeService, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"order type", fmt.Errorf("%q is not a valid order type", s))
	}
}
