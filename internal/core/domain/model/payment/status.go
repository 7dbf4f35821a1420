package payment

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrPaymentAlreadyTerminal is returned when attempting to move a payment out
// of failed or cancelled.
var ErrPaymentAlreadyTerminal = errors.New("payment is in a terminal status")

// Status represents the lifecycle state of a payment.
//
// State transitions:
//
//	pending ──> success
//	   ├──────> failed
//	   └──────> cancelled
//
// success, failed and cancelled are terminal. Re-applying success to an
// already successful payment is an explicit no-op, which is what makes
// repeated provider verification events safe.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the checkout intent exists and awaits provider
	// verification.
	StatusPending

	// StatusSuccess means the provider verified the charge.
	StatusSuccess

	// StatusFailed means the provider reported the charge failed.
	StatusFailed

	// StatusCancelled means the checkout was abandoned or withdrawn.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusSuccess:   "success",
		StatusFailed:    "failed",
		StatusCancelled: "cancelled",
	}
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer using the persisted lower-case form.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses the persisted string form of a payment status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid status", s))
}
