package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Sentinel errors for illegal lifecycle moves. Callers distinguish a move that
// is merely out of order (ErrInvalidTransition) from one attempted on an order
// that can never change again (ErrOrderAlreadyTerminal).
var (
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrOrderAlreadyTerminal = errors.New("order is in a terminal status")
)

// Status represents the lifecycle state of an order in the ledger.
//
// State transitions:
//
//	Pending ──> Paid ──> Accepted ──> Confirmed ──> Completed
//	   │          │          │  └────────────────────>─┘
//	   │          │          │
//	   └──────────┴──────────┴──> Rejected
//	   (any non-terminal) ──────> Cancelled
//
// Pending→Paid is driven exclusively by payment-provider verification.
// Paid→Accepted / →Rejected are vendor decisions. Accepted→Completed is
// reached either through the delivery dispatch machine (delivery orders) or
// via Confirmed by direct vendor action (pickup orders). Rejected, Cancelled
// and Completed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status, catching
	// uninitialized values.
	Unknown Status = iota

	// Pending is the initial status: the order intent exists but payment has
	// not been verified.
	Pending

	// Paid means the payment provider confirmed the charge; the vendor has
	// not yet decided on the order.
	Paid

	// Accepted means the owning vendor committed to fulfilling the order.
	Accepted

	// Confirmed means the vendor marked the order prepared / handed over.
	Confirmed

	// Rejected means the vendor declined the order. Terminal.
	Rejected

	// Completed means the order was fulfilled. Terminal.
	Completed

	// Cancelled means the order was withdrawn before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Paid:      "Paid",
		Accepted:  "Accepted",
		Confirmed: "Confirmed",
		Rejected:  "Rejected",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// legalTransitions enumerates every permitted move. Cancellation is not
// listed: any non-terminal status may move to Cancelled.
func legalTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Paid, Rejected},
		Paid:      {Accepted, Rejected},
		Accepted:  {Confirmed, Completed, Rejected},
		Confirmed: {Completed},
	}
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Completed || s == Cancelled
}

// CanTransitionTo reports whether moving to target is legal from s.
func (s Status) CanTransitionTo(target Status) bool {
	if target == Cancelled {
		return !s.IsTerminal()
	}
	for _, next := range legalTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the move is legal.
//
// A move out of a terminal status fails with ErrOrderAlreadyTerminal; any
// other illegal move fails with ErrInvalidTransition. Both sentinels are
// wrapped with the concrete from/to pair for diagnostics.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if s.IsTerminal() {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrOrderAlreadyTerminal, s, target)
	}

	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}
