package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// GormVendorDirectory implements VendorDirectory using GORM.
type GormVendorDirectory struct {
	db *gorm.DB
}

// NewGormVendorDirectory creates a new GORM vendor directory.
func NewGormVendorDirectory(db *gorm.DB) *GormVendorDirectory {
	return &GormVendorDirectory{db: db}
}

// Register records a vendor's zone projection, replacing any previous one.
func (d *GormVendorDirectory) Register(ctx context.Context, vendorID kernel.UUID, name string, zone kernel.Zone) error {
	if err := errors.Join(vendorID.Validate(), zone.Validate()); err != nil {
		return err
	}

	dto := VendorDTO{ID: vendorID.Bytes(), Name: name, Zone: zone.Name()}
	return d.db.WithContext(ctx).Save(&dto).Error
}

// GetZone resolves a vendor's operating zone.
func (d *GormVendorDirectory) GetZone(ctx context.Context, vendorID kernel.UUID) (kernel.Zone, error) {
	if err := vendorID.Validate(); err != nil {
		return kernel.Zone{}, err
	}

	var dto VendorDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", vendorID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Zone{}, errs.NewObjectNotFoundError("vendor", vendorID.String())
		}
		return kernel.Zone{}, err
	}

	return kernel.NewZone(dto.Zone)
}

// GormRiderDirectory implements RiderDirectory using GORM.
type GormRiderDirectory struct {
	db *gorm.DB
}

// NewGormRiderDirectory creates a new GORM rider directory.
func NewGormRiderDirectory(db *gorm.DB) *GormRiderDirectory {
	return &GormRiderDirectory{db: db}
}

// Register records a rider's zone projection, replacing any previous one.
func (d *GormRiderDirectory) Register(ctx context.Context, riderID kernel.UUID, name string, zone kernel.Zone) error {
	if err := errors.Join(riderID.Validate(), zone.Validate()); err != nil {
		return err
	}

	dto := RiderDTO{ID: riderID.Bytes(), Name: name, Zone: zone.Name()}
	return d.db.WithContext(ctx).Save(&dto).Error
}

// GetZone resolves a rider's operating zone.
func (d *GormRiderDirectory) GetZone(ctx context.Context, riderID kernel.UUID) (kernel.Zone, error) {
	if err := riderID.Validate(); err != nil {
		return kernel.Zone{}, err
	}

	var dto RiderDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", riderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Zone{}, errs.NewObjectNotFoundError("rider", riderID.String())
		}
		return kernel.Zone{}, err
	}

	return kernel.NewZone(dto.Zone)
}

// GetAllInZone lists the riders registered in a zone.
func (d *GormRiderDirectory) GetAllInZone(ctx context.Context, zone kernel.Zone) ([]kernel.UUID, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err := d.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("zone = ?", zone.Name()).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	riders := make([]kernel.UUID, 0, len(ids))
	for _, raw := range ids {
		riderID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		riders = append(riders, riderID)
	}

	return riders, nil
}
