package models

import (
	"time"

	"github.com/google/uuid"
)

// PreviousDayReport is a forward-looking plan for the following day: planned
// times plus two mandatory photo URLs issued by the hosted object storage.
// Rows are insert-only; the sole mutation is setting the weak back-reference
// to the attendance record that eventually materialized for ReportDate.
type PreviousDayReport struct {
	BaseUUIDModel
	UserID                   uuid.UUID  `gorm:"type:uuid;index:idx_previous_day_user_date"         json:"userId"`
	ReportDate               string     `gorm:"type:text;index:idx_previous_day_user_date"         json:"reportDate"`
	NextWakeUpTime           time.Time  `gorm:"type:timestamp"                                     json:"nextWakeUpTime"`
	NextDepartureTime        time.Time  `gorm:"type:timestamp"                                     json:"nextDepartureTime"`
	NextArrivalTime          time.Time  `gorm:"type:timestamp"                                     json:"nextArrivalTime"`
	AppearancePhotoURL       string     `gorm:"type:text"                                          json:"appearancePhotoUrl"`
	RoutePhotoURL            string     `gorm:"type:text"                                          json:"routePhotoUrl"`
	Notes                    *string    `gorm:"type:text"                                          json:"notes,omitempty"`
	ActualAttendanceRecordID *uuid.UUID `gorm:"column:actual_attendance_record_id;type:uuid;index" json:"actualAttendanceRecordId,omitempty"`
}

func (r *PreviousDayReport) IsLinked() bool {
	return r.ActualAttendanceRecordID != nil
}
