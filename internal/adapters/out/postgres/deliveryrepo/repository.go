package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// GormDeliveryTaskRepository implements DeliveryTaskRepository using GORM.
type GormDeliveryTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryTaskRepository creates a new GORM delivery task repository.
func NewGormDeliveryTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryTaskRepository {
	return &GormDeliveryTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormDeliveryTaskRepository) Add(ctx context.Context, task *delivery.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Update saves an existing task to the database.
func (r *GormDeliveryTaskRepository) Update(ctx context.Context, task *delivery.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Get retrieves a task by ID.
func (r *GormDeliveryTaskRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the task created for an order, if any.
func (r *GormDeliveryTaskRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingInZone retrieves the unclaimed tasks in a zone, oldest first.
func (r *GormDeliveryTaskRepository) GetAllPendingInZone(ctx context.Context, zone kernel.Zone) ([]*delivery.Task, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND vendor_location = ?", delivery.Pending.String(), zone.Name()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*delivery.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Claim assigns a pending task to a rider with a single conditional update.
// Exactly one of any number of concurrent claims sees a row change; the rest
// get ErrTaskAlreadyClaimed.
func (r *GormDeliveryTaskRepository) Claim(ctx context.Context, taskID kernel.UUID, riderID kernel.UUID) (*delivery.Task, error) {
	if err := errors.Join(taskID.Validate(), riderID.Validate()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rider := riderID.Bytes()

	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ? AND status = ? AND rider_id IS NULL", taskID.Bytes(), delivery.Pending.String()).
		Updates(map[string]any{
			"rider_id":    rider,
			"status":      delivery.Assigned.String(),
			"assigned_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).Model(&TaskDTO{}).
			Where("id = ?", taskID.Bytes()).Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, errs.NewObjectNotFoundError("delivery task", taskID.String())
		}
		return nil, delivery.ErrTaskAlreadyClaimed
	}

	task, err := r.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return task, nil
}

// Remove deletes a task. Used when an order is cancelled before any rider
// claims its delivery.
func (r *GormDeliveryTaskRepository) Remove(ctx context.Context, taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TaskDTO{}, "id = ?", taskID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery task", taskID.String())
	}

	return nil
}

// CountDeliveredByRiderInWeek counts a rider's Delivered tasks inside the
// week starting at weekStart.
func (r *GormDeliveryTaskRepository) CountDeliveredByRiderInWeek(
	ctx context.Context,
	riderID kernel.UUID,
	weekStart time.Time,
) (int, error) {
	if err := riderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("rider_id = ? AND status = ? AND delivered_at >= ? AND delivered_at < ?",
			riderID.Bytes(), delivery.Delivered.String(), weekStart, weekStart.AddDate(0, 0, 7)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetRidersWithDeliveriesInWeek returns the distinct riders with at least one
// Delivered task inside the week starting at weekStart.
func (r *GormDeliveryTaskRepository) GetRidersWithDeliveriesInWeek(
	ctx context.Context,
	weekStart time.Time,
) ([]kernel.UUID, error) {
	var riderIDs []uuid.UUID
	err := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Distinct("rider_id").
		Where("status = ? AND delivered_at >= ? AND delivered_at < ?",
			delivery.Delivered.String(), weekStart, weekStart.AddDate(0, 0, 7)).
		Pluck("rider_id", &riderIDs).Error
	if err != nil {
		return nil, err
	}

	riders := make([]kernel.UUID, 0, len(riderIDs))
	for _, raw := range riderIDs {
		riderID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		riders = append(riders, riderID)
	}

	return riders, nil
}
