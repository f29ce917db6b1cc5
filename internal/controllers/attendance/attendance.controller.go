// Package attendanceController owns the attendance cycle state machine: one
// live record per (staff, JST date), driven by wake-up/departure/arrival
// events and the day-completion, reopen and reset operations.
package attendanceController

import (
	"context"
	"time"

	"kintai/internal/apperrors"
	"kintai/internal/events"
	"kintai/internal/logger"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
)

type timeField int

const (
	fieldWakeUp timeField = iota
	fieldDeparture
	fieldArrival
)

func (f timeField) label() string {
	switch f {
	case fieldWakeUp:
		return "wake-up"
	case fieldDeparture:
		return "departure"
	default:
		return "arrival"
	}
}

// TimeReportRequest carries one reported attendance event. Date defaults to
// today in JST when empty.
type TimeReportRequest struct {
	Date        string
	Timestamp   string
	Location    *string
	Destination *string
	Notes       *string
}

// CycleResult describes the outcome of a day-level cycle operation.
type CycleResult struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	AlreadyActive    bool              `json:"alreadyActive,omitempty"`
	AlreadyCompleted bool              `json:"alreadyCompleted,omitempty"`
	Record           *AttendanceRecord `json:"record,omitempty"`
}

// StatusFlags is the boolean digest of a staff member's day.
type StatusFlags struct {
	WakeUpReported         bool `json:"wakeUpReported"`
	DepartureReported      bool `json:"departureReported"`
	ArrivalReported        bool `json:"arrivalReported"`
	DailyReportSubmitted   bool `json:"dailyReportSubmitted"`
	ShiftScheduleSubmitted bool `json:"shiftScheduleSubmitted"`
	DayCompleted           bool `json:"dayCompleted"`
}

// StatusSummary is the joined view of a staff member's day: cycle record,
// daily report and shift schedule, with the flag digest grouped under Status.
type StatusSummary struct {
	Date                 string             `json:"date"`
	IsToday              bool               `json:"isToday"`
	IsShowingPreviousDay bool               `json:"isShowingPreviousDay"`
	Status               StatusFlags        `json:"status"`
	AttendanceRecord     *AttendanceRecord  `json:"attendanceRecord,omitempty"`
	DailyReport          *DailyReport       `json:"dailyReport,omitempty"`
	ShiftSchedule        *StaffAvailability `json:"shiftSchedule,omitempty"`
}

type AttendanceControllerInterface interface {
	ReportWakeUp(ctx context.Context, staffID uuid.UUID, req TimeReportRequest) (*AttendanceRecord, error)
	ReportDeparture(ctx context.Context, staffID uuid.UUID, req TimeReportRequest) (*AttendanceRecord, error)
	ReportArrival(ctx context.Context, staffID uuid.UUID, req TimeReportRequest) (*AttendanceRecord, error)
	CompleteDay(ctx context.Context, staffID uuid.UUID, date string) (*CycleResult, error)
	ReopenDay(ctx context.Context, staffID uuid.UUID, date string) (*CycleResult, error)
	StartNewDay(ctx context.Context, staffID uuid.UUID, date string) (*CycleResult, error)
	ResetForNewDay(ctx context.Context, staffID uuid.UUID, date string) (*CycleResult, error)
	GetStatus(ctx context.Context, staffID uuid.UUID) (*StatusSummary, error)
}

type AttendanceController struct {
	attendanceRepo repositories.AttendanceRepository
	reportRepo     repositories.DailyReportRepository
	scheduleRepo   repositories.ScheduleRepository
	eventBus       *events.EventBus
	clock          utils.Clock
	log            logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	clock utils.Clock,
) AttendanceControllerInterface {
	return &AttendanceController{
		attendanceRepo: repos.Attendance,
		reportRepo:     repos.DailyReport,
		scheduleRepo:   repos.Schedule,
		eventBus:       eventBus,
		clock:          clock,
		log:            logger.New("attendanceController"),
	}
}

func (c *AttendanceController) ReportWakeUp(
	ctx context.Context,
	staffID uuid.UUID,
	req TimeReportRequest,
) (*AttendanceRecord, error) {
	return c.reportTime(ctx, staffID, fieldWakeUp, req)
}

func (c *AttendanceController) ReportDeparture(
	ctx context.Context,
	staffID uuid.UUID,
	req TimeReportRequest,
) (*AttendanceRecord, error) {
	return c.reportTime(ctx, staffID, fieldDeparture, req)
}

func (c *AttendanceController) ReportArrival(
	ctx context.Context,
	staffID uuid.UUID,
	req TimeReportRequest,
) (*AttendanceRecord, error) {
	return c.reportTime(ctx, staffID, fieldArrival, req)
}

func (c *AttendanceController) reportTime(
	ctx context.Context,
	staffID uuid.UUID,
	field timeField,
	req TimeReportRequest,
) (*AttendanceRecord, error) {
	log := c.log.Function("reportTime")

	date, err := c.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	timestamp, err := utils.ParseTimestamp(req.Timestamp)
	if err != nil {
		return nil, apperrors.Validationf("invalid time format: %v", err)
	}

	record, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	if record != nil {
		if fieldValue(record, field) != nil {
			return nil, apperrors.Conflict(field.label() + " already recorded")
		}

		setField(record, field, &timestamp)
		mergeMetadata(record, req)

		// Both the engine and the report lifecycle enforce this: a cycle
		// with all three times reported is complete.
		if record.AllTimesReported() {
			record.Status = AttendanceComplete
		}

		if err := c.attendanceRepo.Update(ctx, record); err != nil {
			return nil, err
		}
	} else {
		record = &AttendanceRecord{
			StaffID: staffID,
			Date:    date,
			Status:  AttendancePartial,
		}
		setField(record, field, &timestamp)
		mergeMetadata(record, req)

		if err := c.attendanceRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	log.Info("attendance event recorded",
		"staffID", staffID,
		"date", date,
		"field", field.label(),
		"status", record.Status,
	)

	c.publish(events.STATUS_UPDATE, staffID, date, string(record.Status))
	return record, nil
}

// CompleteDay is idempotent: completing an already-completed day reports
// success without touching rows.
func (c *AttendanceController) CompleteDay(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*CycleResult, error) {
	log := c.log.Function("CompleteDay")

	date, err := c.resolveDate(date)
	if err != nil {
		return nil, err
	}

	record, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	if record != nil {
		record.Status = AttendanceComplete
		if err := c.attendanceRepo.Update(ctx, record); err != nil {
			return nil, err
		}
	} else {
		latest, err := c.attendanceRepo.GetLatest(ctx, staffID, date)
		if err != nil {
			return nil, err
		}
		if latest != nil && latest.Status == AttendanceComplete {
			return &CycleResult{
				Success:          true,
				Message:          "day already completed",
				AlreadyCompleted: true,
				Record:           latest,
			}, nil
		}

		record = &AttendanceRecord{
			StaffID: staffID,
			Date:    date,
			Status:  AttendanceComplete,
		}
		if err := c.attendanceRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	c.advanceDraftReport(ctx, staffID, date, log)

	c.publish(events.DAY_COMPLETED, staffID, date, string(AttendanceComplete))
	return &CycleResult{Success: true, Message: "day completed", Record: record}, nil
}

func (c *AttendanceController) ReopenDay(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*CycleResult, error) {
	log := c.log.Function("ReopenDay")

	date, err := c.resolveDate(date)
	if err != nil {
		return nil, err
	}

	latest, err := c.attendanceRepo.GetLatest(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	if latest == nil || latest.Status != AttendanceComplete {
		return &CycleResult{Success: false, Message: "no completed day to reopen"}, nil
	}

	latest.Status = AttendanceActive
	if err := c.attendanceRepo.Update(ctx, latest); err != nil {
		return nil, err
	}

	// Best-effort: revert a submitted report back to draft.
	report, err := c.reportRepo.GetActive(ctx, staffID, date)
	if err != nil {
		log.Warn("failed to look up daily report on reopen", "staffID", staffID, "date", date, "error", err)
	} else if report != nil && report.Status == ReportSubmitted {
		report.Status = ReportDraft
		report.SubmittedAt = nil
		if err := c.reportRepo.Update(ctx, report); err != nil {
			log.Warn("failed to revert daily report to draft", "reportID", report.ID, "error", err)
		}
	}

	c.publish(events.DAY_REOPENED, staffID, date, string(AttendanceActive))
	return &CycleResult{Success: true, Message: "day reopened", Record: latest}, nil
}

// StartNewDay resets a completed day and begins a fresh active cycle. The
// day's daily reports are archived, not deleted, matching the archival policy
// used everywhere else.
func (c *AttendanceController) StartNewDay(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*CycleResult, error) {
	log := c.log.Function("StartNewDay")

	date, err := c.resolveDate(date)
	if err != nil {
		return nil, err
	}

	current, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &CycleResult{
			Success:       true,
			Message:       "day already active",
			AlreadyActive: true,
			Record:        current,
		}, nil
	}

	latest, err := c.attendanceRepo.GetLatest(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	if latest != nil && latest.Status == AttendanceComplete {
		latest.Status = AttendanceReset
		if err := c.attendanceRepo.Update(ctx, latest); err != nil {
			return nil, err
		}

		c.archiveActiveReports(ctx, staffID, date, log)
	}

	record := &AttendanceRecord{
		StaffID: staffID,
		Date:    date,
		Status:  AttendanceActive,
	}
	if err := c.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	c.publish(events.CYCLE_RESET, staffID, date, string(AttendanceActive))
	return &CycleResult{Success: true, Message: "new day started", Record: record}, nil
}

// ResetForNewDay is the conservative sibling of StartNewDay: it never touches
// a completed day and only creates a record when none exists at all.
func (c *AttendanceController) ResetForNewDay(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*CycleResult, error) {
	date, err := c.resolveDate(date)
	if err != nil {
		return nil, err
	}

	current, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &CycleResult{
			Success:       true,
			Message:       "day already active",
			AlreadyActive: true,
			Record:        current,
		}, nil
	}

	latest, err := c.attendanceRepo.GetLatest(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == AttendanceComplete {
		return &CycleResult{
			Success:          true,
			Message:          "day already completed",
			AlreadyCompleted: true,
			Record:           latest,
		}, nil
	}

	record := &AttendanceRecord{
		StaffID: staffID,
		Date:    date,
		Status:  AttendancePending,
	}
	if err := c.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	c.publish(events.CYCLE_RESET, staffID, date, string(AttendancePending))
	return &CycleResult{Success: true, Message: "new day ready", Record: record}, nil
}

func (c *AttendanceController) GetStatus(
	ctx context.Context,
	staffID uuid.UUID,
) (*StatusSummary, error) {
	today := utils.CurrentDate(c.clock)
	date := today
	showingPreviousDay := false
	dayCompleted := false

	record, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, today)
	if err != nil {
		return nil, err
	}

	if record == nil {
		latest, err := c.attendanceRepo.GetLatest(ctx, staffID, today)
		if err != nil {
			return nil, err
		}

		if latest != nil && latest.Status == AttendanceComplete {
			record = latest
			dayCompleted = true
		} else {
			// Nothing for today: fall back to an unfinished cycle from
			// yesterday so late-night users still see their open day.
			yesterday, err := utils.PreviousDate(today)
			if err != nil {
				return nil, apperrors.Internal("failed to compute previous date", err)
			}

			previous, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, yesterday)
			if err != nil {
				return nil, err
			}
			if previous != nil {
				record = previous
				date = yesterday
				showingPreviousDay = true
			}
		}
	}

	report, err := c.reportRepo.GetActive(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	availability, err := c.scheduleRepo.GetAvailability(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	summary := &StatusSummary{
		Date:                 date,
		IsToday:              date == today,
		IsShowingPreviousDay: showingPreviousDay,
		Status: StatusFlags{
			DayCompleted:           dayCompleted,
			DailyReportSubmitted:   report != nil && report.Status == ReportSubmitted,
			ShiftScheduleSubmitted: availability != nil,
		},
		AttendanceRecord: record,
		DailyReport:      report,
		ShiftSchedule:    availability,
	}

	if record != nil {
		summary.Status.WakeUpReported = record.WakeUpTime != nil
		summary.Status.DepartureReported = record.DepartureTime != nil
		summary.Status.ArrivalReported = record.ArrivalTime != nil
		if record.Status == AttendanceComplete {
			summary.Status.DayCompleted = true
		}
	}

	return summary, nil
}

// resolveDate validates an explicit date or defaults to today in JST.
func (c *AttendanceController) resolveDate(date string) (string, error) {
	if date == "" {
		return utils.CurrentDate(c.clock), nil
	}
	if _, err := utils.ParseDate(date); err != nil {
		return "", apperrors.Validationf("invalid date: %v", err)
	}
	return date, nil
}

// advanceDraftReport promotes a draft daily report to submitted when its day
// completes. Failures are logged, never fatal to the primary operation.
func (c *AttendanceController) advanceDraftReport(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
	log logger.Logger,
) {
	report, err := c.reportRepo.GetActive(ctx, staffID, date)
	if err != nil {
		log.Warn("failed to look up daily report on completion", "staffID", staffID, "date", date, "error", err)
		return
	}
	if report == nil || report.Status != ReportDraft {
		return
	}

	now := c.clock.Now()
	report.Status = ReportSubmitted
	report.SubmittedAt = &now
	if err := c.reportRepo.Update(ctx, report); err != nil {
		log.Warn("failed to advance daily report to submitted", "reportID", report.ID, "error", err)
	}
}

// archiveActiveReports marks the day's draft/submitted reports archived when
// the cycle is reset. Best-effort per report.
func (c *AttendanceController) archiveActiveReports(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
	log logger.Logger,
) {
	reports, err := c.reportRepo.ListActive(ctx, staffID, date)
	if err != nil {
		log.Warn("failed to list daily reports for archival", "staffID", staffID, "date", date, "error", err)
		return
	}

	for _, report := range reports {
		report.Status = ReportArchived
		if err := c.reportRepo.Update(ctx, report); err != nil {
			log.Warn("failed to archive daily report", "reportID", report.ID, "error", err)
		}
	}
}

func (c *AttendanceController) publish(
	eventType events.MessageType,
	staffID uuid.UUID,
	date string,
	status string,
) {
	if c.eventBus == nil {
		return
	}

	err := c.eventBus.Publish(events.STATUS_CHANNEL, events.Event{
		Type:    eventType,
		StaffID: &staffID,
		Data: map[string]any{
			"date":   date,
			"status": status,
		},
	})
	if err != nil {
		c.log.Function("publish").
			Warn("failed to publish status event", "staffID", staffID, "date", date, "error", err)
	}
}

func fieldValue(record *AttendanceRecord, field timeField) *time.Time {
	switch field {
	case fieldWakeUp:
		return record.WakeUpTime
	case fieldDeparture:
		return record.DepartureTime
	default:
		return record.ArrivalTime
	}
}

func setField(record *AttendanceRecord, field timeField, value *time.Time) {
	switch field {
	case fieldWakeUp:
		record.WakeUpTime = value
	case fieldDeparture:
		record.DepartureTime = value
	default:
		record.ArrivalTime = value
	}
}

func mergeMetadata(record *AttendanceRecord, req TimeReportRequest) {
	if req.Location != nil {
		record.Location = req.Location
	}
	if req.Destination != nil {
		record.Destination = req.Destination
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
}
