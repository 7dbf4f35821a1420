package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrTaskIsNotConstructed is returned when a Task instance was not created
// through NewTask or RestoreTask.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// Task is the delivery dispatch aggregate, 1:1 with a delivery order. It is
// created Pending once the order is Accepted and carries the vendor's zone as
// captured at creation time; the zone is deliberately not re-read later so a
// vendor relocating mid-flight cannot strand an in-progress delivery.
//
// Invariants:
//   - rider is set iff status is Assigned, PickedUp or Delivered
//   - only the assigned rider may progress the task
//   - each transition records its timestamp exactly once
type Task struct {
	id             kernel.UUID
	orderID        kernel.UUID
	vendorID       kernel.UUID
	riderID        *kernel.UUID
	vendorLocation kernel.Zone
	status         Status

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewTask creates a Pending task for an accepted order, copying the vendor's
// current zone as the task's fixed pickup location.
func NewTask(
	id kernel.UUID,
	orderID kernel.UUID,
	vendorID kernel.UUID,
	vendorLocation kernel.Zone,
	createdAt time.Time,
) (*Task, error) {
	t := &Task{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setVendorID(vendorID),
		t.setVendorLocation(vendorLocation),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return t, nil
}

// RestoreTask reconstructs a task from persistence, checking the
// rider/status consistency invariant.
func RestoreTask(
	id kernel.UUID,
	orderID kernel.UUID,
	vendorID kernel.UUID,
	riderID *kernel.UUID,
	vendorLocation kernel.Zone,
	status Status,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
) (*Task, error) {
	t, err := NewTask(id, orderID, vendorID, vendorLocation, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if status.RequiresRider() != (riderID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("task status",
			fmt.Errorf("status %s is inconsistent with rider assignment", status))
	}
	if riderID != nil {
		if err = riderID.Validate(); err != nil {
			return nil, err
		}
	}

	t.status = status
	t.riderID = riderID
	t.assignedAt = assignedAt
	t.pickedUpAt = pickedUpAt
	t.deliveredAt = deliveredAt

	return t, nil
}

// Validate ensures the Task was created through a constructor.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// OrderID returns the identifier of the linked order.
func (t *Task) OrderID() kernel.UUID { return t.orderID }

// VendorID returns the vendor the order is picked up from.
func (t *Task) VendorID() kernel.UUID { return t.vendorID }

// RiderID returns the assigned rider, or nil while the task is Pending.
func (t *Task) RiderID() *kernel.UUID { return t.riderID }

// VendorLocation returns the pickup zone captured at task creation.
func (t *Task) VendorLocation() kernel.Zone { return t.vendorLocation }

// Status returns the current dispatch status.
func (t *Task) Status() Status { return t.status }

// CreatedAt returns the task's creation time.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// AssignedAt returns when the task was claimed, if it was.
func (t *Task) AssignedAt() *time.Time { return t.assignedAt }

// PickedUpAt returns when the order was collected, if it was.
func (t *Task) PickedUpAt() *time.Time { return t.pickedUpAt }

// DeliveredAt returns when the order was delivered, if it was.
func (t *Task) DeliveredAt() *time.Time { return t.deliveredAt }

// IsAssignedTo reports whether riderID currently owns the task.
func (t *Task) IsAssignedTo(riderID kernel.UUID) bool {
	return t.riderID != nil && t.riderID.IsEqual(riderID)
}

// Claim assigns the task to a rider.
//
// This is the domain-level view of the claim; the authoritative race
// resolution is the repository's conditional update, and a claim against an
// already owned task fails here with ErrTaskAlreadyClaimed just as losing
// claimants do at the storage layer.
func (t *Task) Claim(riderID kernel.UUID, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	if t.riderID != nil {
		return ErrTaskAlreadyClaimed
	}
	if err := t.advance(Assigned); err != nil {
		return err
	}

	t.riderID = &riderID
	t.assignedAt = &at
	return nil
}

// MarkPickedUp records that the assigned rider collected the order.
func (t *Task) MarkPickedUp(riderID kernel.UUID, at time.Time) error {
	if !t.IsAssignedTo(riderID) {
		return ErrRiderNotAssigned
	}
	if err := t.advance(PickedUp); err != nil {
		return err
	}

	t.pickedUpAt = &at
	return nil
}

// MarkDelivered records that the assigned rider completed the delivery.
// Reaching Delivered is what drives the linked order to Completed.
func (t *Task) MarkDelivered(riderID kernel.UUID, at time.Time) error {
	if !t.IsAssignedTo(riderID) {
		return ErrRiderNotAssigned
	}
	if err := t.advance(Delivered); err != nil {
		return err
	}

	t.deliveredAt = &at
	return nil
}

// advance moves the machine to target when it is the legal next step.
func (t *Task) advance(target Status) error {
	next, err := t.status.Next()
	if err != nil || next != target {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, target)
	}

	t.status = target
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Task) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.vendorID = id
	return nil
}

func (t *Task) setVendorLocation(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	t.vendorLocation = zone
	return nil
}
