package delivery

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Sentinel errors for the dispatch machine.
var (
	// ErrInvalidTransition is returned for a task move that is not legal from
	// the current status.
	ErrInvalidTransition = errors.New("invalid delivery task transition")

	// ErrTaskAlreadyClaimed is returned when a rider attempts to claim a task
	// that another rider already owns.
	ErrTaskAlreadyClaimed = errors.New("delivery task already claimed")

	// ErrRiderNotAssigned is returned when a rider other than the assigned
	// one attempts to progress the task.
	ErrRiderNotAssigned = errors.New("rider is not assigned to this delivery task")
)

// Status represents the lifecycle state of a delivery task.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> Delivered
//
// Pending→Assigned is the atomic rider claim; the remaining moves are driven
// by the assigned rider only. Delivered is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the task awaits a rider claim.
	Pending

	// Assigned means exactly one rider owns the task.
	Assigned

	// PickedUp means the rider collected the order from the vendor.
	PickedUp

	// Delivered means the rider handed the order to the customer. Terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
	}
}

// Validate checks that the Status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid status", s))
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

// Next returns the single legal successor of s, or an error at Delivered.
func (s Status) Next() (Status, error) {
	switch s {
	case Pending:
		return Assigned, nil
	case Assigned:
		return PickedUp, nil
	case PickedUp:
		return Delivered, nil
	default:
		return Unknown, fmt.Errorf("%w: no transition from %s", ErrInvalidTransition, s)
	}
}

// RequiresRider reports whether a task in this status must have a rider set.
// The aggregate invariant is: rider is non-nil iff status is Assigned,
// PickedUp or Delivered.
func (s Status) RequiresRider() bool {
	return s == Assigned || s == PickedUp || s == Delivered
}

// StatusFromString parses the persisted string form of a task status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%q is not a valid status", s))
}
