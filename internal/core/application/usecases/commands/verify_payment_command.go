package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrVerifyPaymentCommandIsNotConstructed = errors.New(
	"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
)

// VerifyPaymentCommand represents a payment provider verification event.
// The provider may deliver the same event many times; handling is a no-op
// after the first successful processing.
type VerifyPaymentCommand struct { //nolint:recvcheck //using for validation
	reference string
	verified  bool

	guard guard.ConstructorGuard
}

// NewVerifyPaymentCommand creates a verification command for a provider
// reference. verified reports the provider's verdict on the charge.
func NewVerifyPaymentCommand(reference string, verified bool) (VerifyPaymentCommand, error) {
	cmd := VerifyPaymentCommand{
		guard: guard.NewConstructorGuard(),

		verified: verified,
	}

	if err := cmd.setReference(reference); err != nil {
		return VerifyPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

// Reference returns the payment provider reference.
func (c VerifyPaymentCommand) Reference() string { return c.reference }

// Verified reports whether the provider confirmed the charge.
func (c VerifyPaymentCommand) Verified() bool { return c.verified }

func (c *VerifyPaymentCommand) setReference(reference string) error {
	if reference == "" {
		return ErrReferenceIsRequired
	}

	c.reference = reference
	return nil
}
