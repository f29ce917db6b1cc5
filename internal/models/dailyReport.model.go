package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportStatus string

const (
	ReportDraft      ReportStatus = "draft"
	ReportSubmitted  ReportStatus = "submitted"
	ReportArchived   ReportStatus = "archived"
	ReportSuperseded ReportStatus = "superseded"
)

// IsActive reports whether the report is the live report for its day.
func (s ReportStatus) IsActive() bool {
	return s == ReportDraft || s == ReportSubmitted
}

// DailyReport is a staff member's end-of-day report. Submitting a new report
// supersedes any earlier report for the same date; superseded and archived
// rows are retained for audit.
type DailyReport struct {
	BaseUUIDModel
	StaffID      uuid.UUID        `gorm:"type:uuid;index:idx_daily_reports_staff_date" json:"staffId"`
	Date         string           `gorm:"type:text;index:idx_daily_reports_staff_date" json:"date"`
	Content      string           `gorm:"type:text"                                    json:"content"`
	WorkHours    *decimal.Decimal `gorm:"type:decimal(4,2)"                            json:"workHours,omitempty"`
	Achievements *string          `gorm:"type:text"                                    json:"achievements,omitempty"`
	Challenges   *string          `gorm:"type:text"                                    json:"challenges,omitempty"`
	Tomorrow     *string          `gorm:"type:text"                                    json:"tomorrow,omitempty"`
	Status       ReportStatus     `gorm:"type:text;default:'draft';index"              json:"status"`
	SubmittedAt  *time.Time       `gorm:"type:timestamp"                               json:"submittedAt,omitempty"`
}
