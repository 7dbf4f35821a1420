// Package directory resolves vendors and riders to their operating zones.
// The marketplace's account service owns the full profiles; this keeps only
// the projection the dispatch engine needs.
package directory

import (
	"github.com/google/uuid"
)

// VendorDTO is the zone projection of a vendor.
type VendorDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(128)"`
	Zone string    `gorm:"type:varchar(64);index"`
}

// TableName overrides GORM's default naming to use "vendors".
func (VendorDTO) TableName() string {
	return "vendors"
}

// RiderDTO is the zone projection of a rider.
type RiderDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(128)"`
	Zone string    `gorm:"type:varchar(64);index"`
}

// TableName overrides GORM's default naming to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}
