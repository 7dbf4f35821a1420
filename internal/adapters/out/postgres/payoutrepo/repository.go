package payoutrepo

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/errs"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// isUniqueViolation reports whether err is a unique constraint violation,
// from either the lib/pq driver or GORM's translated form.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// GormVendorPayoutRepository implements VendorPayoutRepository using GORM.
type GormVendorPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormVendorPayoutRepository creates a new GORM vendor payout repository.
func NewGormVendorPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormVendorPayoutRepository {
	return &GormVendorPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new vendor payout. A second payout for the same (payment,
// order) pair hits the unique index and surfaces as ErrPayoutAlreadyExists.
func (r *GormVendorPayoutRepository) Add(ctx context.Context, aggregate *payout.VendorPayout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := vendorPayoutFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return payout.ErrPayoutAlreadyExists
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing vendor payout.
func (r *GormVendorPayoutRepository) Update(ctx context.Context, aggregate *payout.VendorPayout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := vendorPayoutFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VendorPayoutDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a vendor payout by ID.
func (r *GormVendorPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.VendorPayout, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VendorPayoutDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vendor payout", id.String())
		}
		return nil, err
	}

	return vendorPayoutToDomain(dto)
}

// GetAllByVendor retrieves every payout credited to a vendor.
func (r *GormVendorPayoutRepository) GetAllByVendor(ctx context.Context, vendorID kernel.UUID) ([]*payout.VendorPayout, error) {
	if err := vendorID.Validate(); err != nil {
		return nil, err
	}

	var dtos []VendorPayoutDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "vendor_id = ?", vendorID.Bytes()).Error; err != nil {
		return nil, err
	}

	payouts := make([]*payout.VendorPayout, 0, len(dtos))
	for _, dto := range dtos {
		p, err := vendorPayoutToDomain(dto)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}

	return payouts, nil
}

// GormRiderPayoutRepository implements RiderPayoutRepository using GORM.
type GormRiderPayoutRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRiderPayoutRepository creates a new GORM rider payout repository.
func NewGormRiderPayoutRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderPayoutRepository {
	return &GormRiderPayoutRepository{
		db:      db,
		tracker: tracker,
	}
}

// Upsert writes a rider's weekly payout, replacing the existing row for the
// same (rider, week) if one exists.
func (r *GormRiderPayoutRepository) Upsert(ctx context.Context, aggregate *payout.RiderPayout) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := riderPayoutFromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "rider_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_deliveries", "amount_per_delivery", "total_amount", "status",
		}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider payout by ID.
func (r *GormRiderPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.RiderPayout, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderPayoutDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider payout", id.String())
		}
		return nil, err
	}

	return riderPayoutToDomain(dto)
}

// GetByRiderAndWeek retrieves one rider's payout for a week.
func (r *GormRiderPayoutRepository) GetByRiderAndWeek(
	ctx context.Context,
	riderID kernel.UUID,
	weekStart time.Time,
) (*payout.RiderPayout, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dto RiderPayoutDTO
	err := r.db.WithContext(ctx).
		First(&dto, "rider_id = ? AND week_start = ?", riderID.Bytes(), weekStart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider payout", riderID.String())
		}
		return nil, err
	}

	return riderPayoutToDomain(dto)
}

// GetAllByWeek retrieves every rider payout for a week.
func (r *GormRiderPayoutRepository) GetAllByWeek(ctx context.Context, weekStart time.Time) ([]*payout.RiderPayout, error) {
	var dtos []RiderPayoutDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "week_start = ?", weekStart).Error; err != nil {
		return nil, err
	}

	payouts := make([]*payout.RiderPayout, 0, len(dtos))
	for _, dto := range dtos {
		p, err := riderPayoutToDomain(dto)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}

	return payouts, nil
}
