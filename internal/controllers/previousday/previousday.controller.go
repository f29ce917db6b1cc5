// Package previousdayController connects forward-looking plans to the
// attendance records they predict. Filing a plan for tomorrow archives
// today's open cycle; linking a plan to its realized record is a separate,
// caller-invoked step (see the handler contract).
package previousdayController

import (
	"context"

	"kintai/internal/apperrors"
	"kintai/internal/events"
	"kintai/internal/logger"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
)

type SubmitPreviousDayRequest struct {
	NextWakeUpTime     string
	NextDepartureTime  string
	NextArrivalTime    string
	AppearancePhotoURL string
	RoutePhotoURL      string
	Notes              *string
}

type LinkResult struct {
	Linked              bool      `json:"linked"`
	AlreadyLinked       bool      `json:"alreadyLinked"`
	PreviousDayReportID uuid.UUID `json:"previousDayReportId"`
}

type PreviousDayControllerInterface interface {
	SubmitPreviousDayReport(ctx context.Context, userID uuid.UUID, req SubmitPreviousDayRequest) (*PreviousDayReport, error)
	LinkToAttendanceRecord(ctx context.Context, userID uuid.UUID, attendanceRecordID uuid.UUID, reportDate string) (*LinkResult, error)
}

type PreviousDayController struct {
	previousDayRepo repositories.PreviousDayReportRepository
	attendanceRepo  repositories.AttendanceRepository
	reportRepo      repositories.DailyReportRepository
	eventBus        *events.EventBus
	clock           utils.Clock
	log             logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	clock utils.Clock,
) PreviousDayControllerInterface {
	return &PreviousDayController{
		previousDayRepo: repos.PreviousDayReport,
		attendanceRepo:  repos.Attendance,
		reportRepo:      repos.DailyReport,
		eventBus:        eventBus,
		clock:           clock,
		log:             logger.New("previousDayController"),
	}
}

func (c *PreviousDayController) SubmitPreviousDayReport(
	ctx context.Context,
	userID uuid.UUID,
	req SubmitPreviousDayRequest,
) (*PreviousDayReport, error) {
	log := c.log.Function("SubmitPreviousDayReport")

	wakeUp, err := utils.ParseTimestamp(req.NextWakeUpTime)
	if err != nil {
		return nil, apperrors.Validationf("invalid next wake-up time: %v", err)
	}
	departure, err := utils.ParseTimestamp(req.NextDepartureTime)
	if err != nil {
		return nil, apperrors.Validationf("invalid next departure time: %v", err)
	}
	arrival, err := utils.ParseTimestamp(req.NextArrivalTime)
	if err != nil {
		return nil, apperrors.Validationf("invalid next arrival time: %v", err)
	}
	if req.AppearancePhotoURL == "" {
		return nil, apperrors.Validation("appearance photo is required")
	}
	if req.RoutePhotoURL == "" {
		return nil, apperrors.Validation("route photo is required")
	}

	today := utils.CurrentDate(c.clock)
	targetDate, err := utils.NextDate(today)
	if err != nil {
		return nil, apperrors.Internal("failed to compute target date", err)
	}

	// Filing tomorrow's plan supersedes today's open cycle. Each archival is
	// best-effort: a failure here must not block the plan itself.
	c.archiveCurrentCycle(ctx, userID, today, log)
	c.archiveActiveReports(ctx, userID, today, log)

	report := &PreviousDayReport{
		UserID:             userID,
		ReportDate:         targetDate,
		NextWakeUpTime:     wakeUp,
		NextDepartureTime:  departure,
		NextArrivalTime:    arrival,
		AppearancePhotoURL: req.AppearancePhotoURL,
		RoutePhotoURL:      req.RoutePhotoURL,
		Notes:              req.Notes,
	}
	if err := c.previousDayRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Info("previous day report submitted",
		"userID", userID,
		"reportDate", targetDate,
		"reportID", report.ID,
	)

	if c.eventBus != nil {
		if err := c.eventBus.Publish(events.STATUS_CHANNEL, events.Event{
			Type:    events.CYCLE_RESET,
			StaffID: &userID,
			Data:    map[string]any{"date": today, "reportDate": targetDate},
		}); err != nil {
			log.Warn("failed to publish cycle reset event", "userID", userID, "error", err)
		}
	}

	return report, nil
}

func (c *PreviousDayController) LinkToAttendanceRecord(
	ctx context.Context,
	userID uuid.UUID,
	attendanceRecordID uuid.UUID,
	reportDate string,
) (*LinkResult, error) {
	log := c.log.Function("LinkToAttendanceRecord")

	record, err := c.attendanceRepo.GetByID(ctx, attendanceRecordID)
	if err != nil {
		return nil, err
	}
	if record.StaffID != userID {
		// Rows are scoped to their owner; a foreign record is invisible.
		return nil, apperrors.NotFound("attendance record not found")
	}

	if reportDate == "" {
		reportDate = record.Date
	} else if _, err := utils.ParseDate(reportDate); err != nil {
		return nil, apperrors.Validationf("invalid report date: %v", err)
	}

	report, err := c.previousDayRepo.GetByReportDate(ctx, userID, reportDate)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperrors.NotFound("no previous day report for date")
	}

	if report.IsLinked() {
		return &LinkResult{AlreadyLinked: true, PreviousDayReportID: report.ID}, nil
	}

	report.ActualAttendanceRecordID = &record.ID
	if err := c.previousDayRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	log.Info("previous day report linked",
		"userID", userID,
		"reportID", report.ID,
		"attendanceRecordID", record.ID,
	)

	return &LinkResult{Linked: true, PreviousDayReportID: report.ID}, nil
}

func (c *PreviousDayController) archiveCurrentCycle(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	log logger.Logger,
) {
	record, err := c.attendanceRepo.GetCurrentCycle(ctx, userID, date)
	if err != nil {
		log.Warn("failed to look up current cycle for archival", "userID", userID, "date", date, "error", err)
		return
	}
	if record == nil {
		return
	}

	record.Status = AttendanceArchived
	if err := c.attendanceRepo.Update(ctx, record); err != nil {
		log.Warn("failed to archive attendance record", "recordID", record.ID, "error", err)
	}
}

func (c *PreviousDayController) archiveActiveReports(
	ctx context.Context,
	userID uuid.UUID,
	date string,
	log logger.Logger,
) {
	reports, err := c.reportRepo.ListActive(ctx, userID, date)
	if err != nil {
		log.Warn("failed to list daily reports for archival", "userID", userID, "date", date, "error", err)
		return
	}

	for _, report := range reports {
		report.Status = ReportArchived
		if err := c.reportRepo.Update(ctx, report); err != nil {
			log.Warn("failed to archive daily report", "reportID", report.ID, "error", err)
		}
	}
}
