// Package deliveryrepo persists delivery tasks. The claim operation is a
// conditional update so two riders racing for the same task are resolved by
// the database rather than by application locks.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// TaskDTO is the database representation of a delivery task.
type TaskDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	VendorID       uuid.UUID  `gorm:"type:uuid;index"`
	RiderID        *uuid.UUID `gorm:"type:uuid;index"`
	VendorLocation string     `gorm:"type:varchar(64);index"`
	Status         string     `gorm:"type:varchar(16);index"`
	CreatedAt      time.Time
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "delivery_tasks".
func (TaskDTO) TableName() string {
	return "delivery_tasks"
}

func fromDomain(task *delivery.Task) TaskDTO {
	var riderID *uuid.UUID
	if id := task.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return TaskDTO{
		ID:             task.ID().Bytes(),
		OrderID:        task.OrderID().Bytes(),
		VendorID:       task.VendorID().Bytes(),
		RiderID:        riderID,
		VendorLocation: task.VendorLocation().Name(),
		Status:         task.Status().String(),
		CreatedAt:      task.CreatedAt(),
		AssignedAt:     task.AssignedAt(),
		PickedUpAt:     task.PickedUpAt(),
		DeliveredAt:    task.DeliveredAt(),
	}
}

func toDomain(dto TaskDTO) (*delivery.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	zone, err := kernel.NewZone(dto.VendorLocation)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreTask(
		id, orderID, vendorID, riderID,
		zone, status, dto.CreatedAt,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
