package models

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePending  AttendanceStatus = "pending"
	AttendancePartial  AttendanceStatus = "partial"
	AttendanceActive   AttendanceStatus = "active"
	AttendanceComplete AttendanceStatus = "complete"
	AttendanceReset    AttendanceStatus = "reset"
	AttendanceArchived AttendanceStatus = "archived"
)

// IsCurrentCycle reports whether a record with this status is the live record
// for its day. At most one such record may exist per (staff_id, date).
func (s AttendanceStatus) IsCurrentCycle() bool {
	return s == AttendancePending || s == AttendancePartial || s == AttendanceActive
}

// AttendanceRecord is one attendance cycle for a staff member on a JST
// calendar date. Historical rows (complete/reset/archived) are kept for
// review and never deleted.
type AttendanceRecord struct {
	BaseUUIDModel
	StaffID       uuid.UUID        `gorm:"type:uuid;index:idx_attendance_staff_date" json:"staffId"`
	Date          string           `gorm:"type:text;index:idx_attendance_staff_date" json:"date"`
	WakeUpTime    *time.Time       `gorm:"type:timestamp"                            json:"wakeUpTime,omitempty"`
	DepartureTime *time.Time       `gorm:"type:timestamp"                            json:"departureTime,omitempty"`
	ArrivalTime   *time.Time       `gorm:"type:timestamp"                            json:"arrivalTime,omitempty"`
	Status        AttendanceStatus `gorm:"type:text;default:'pending';index"         json:"status"`
	Location      *string          `gorm:"type:text"                                 json:"location,omitempty"`
	Destination   *string          `gorm:"type:text"                                 json:"destination,omitempty"`
	Notes         *string          `gorm:"type:text"                                 json:"notes,omitempty"`
}

// AllTimesReported reports whether wake-up, departure and arrival have all
// been recorded, the condition for auto-completing the day.
func (r *AttendanceRecord) AllTimesReported() bool {
	return r.WakeUpTime != nil && r.DepartureTime != nil && r.ArrivalTime != nil
}
