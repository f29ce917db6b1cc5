package models

import (
	"github.com/google/uuid"
)

// Worksite is lookup data describing a work location. Read-only for the
// attendance engine; rows are managed by seeding/administration.
type Worksite struct {
	BaseUUIDModel
	Name    string  `gorm:"type:text"  json:"name"`
	Address *string `gorm:"type:text"  json:"address,omitempty"`
}

// StaffAvailability schedules a staff member at a worksite on a JST date.
// Consulted, never mutated, by the attendance engine.
type StaffAvailability struct {
	BaseUUIDModel
	StaffID    uuid.UUID `gorm:"type:uuid;index:idx_availability_staff_date" json:"staffId"`
	Date       string    `gorm:"type:text;index:idx_availability_staff_date" json:"date"`
	WorksiteID uuid.UUID `gorm:"type:uuid"                                   json:"worksiteId"`
	Worksite   *Worksite `gorm:"foreignKey:WorksiteID"                       json:"worksite,omitempty"`
}
