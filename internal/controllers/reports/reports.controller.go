// Package reportsController manages the daily report lifecycle: a new
// submission supersedes the day's earlier reports, and a fully reported
// attendance cycle is advanced to complete when the report lands.
package reportsController

import (
	"context"

	"kintai/internal/apperrors"
	"kintai/internal/events"
	"kintai/internal/logger"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubmitReportRequest struct {
	Date         string
	Content      string
	WorkHours    *float64
	Achievements *string
	Challenges   *string
	Tomorrow     *string
}

type ReportsControllerInterface interface {
	SubmitReport(ctx context.Context, staffID uuid.UUID, req SubmitReportRequest) (*DailyReport, error)
	GetActiveReport(ctx context.Context, staffID uuid.UUID, date string) (*DailyReport, error)
}

type ReportsController struct {
	reportRepo     repositories.DailyReportRepository
	attendanceRepo repositories.AttendanceRepository
	eventBus       *events.EventBus
	clock          utils.Clock
	log            logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	clock utils.Clock,
) ReportsControllerInterface {
	return &ReportsController{
		reportRepo:     repos.DailyReport,
		attendanceRepo: repos.Attendance,
		eventBus:       eventBus,
		clock:          clock,
		log:            logger.New("reportsController"),
	}
}

func (c *ReportsController) SubmitReport(
	ctx context.Context,
	staffID uuid.UUID,
	req SubmitReportRequest,
) (*DailyReport, error) {
	log := c.log.Function("SubmitReport")

	if req.Content == "" {
		return nil, apperrors.Validation("content is required")
	}

	date := req.Date
	if date == "" {
		date = utils.CurrentDate(c.clock)
	} else if _, err := utils.ParseDate(date); err != nil {
		return nil, apperrors.Validationf("invalid date: %v", err)
	}

	// Supersede before insert so there is never more than one live report.
	existing, err := c.reportRepo.ListActive(ctx, staffID, date)
	if err != nil {
		return nil, err
	}
	for _, old := range existing {
		old.Status = ReportSuperseded
		if err := c.reportRepo.Update(ctx, old); err != nil {
			return nil, err
		}
	}

	now := c.clock.Now()
	report := &DailyReport{
		StaffID:      staffID,
		Date:         date,
		Content:      req.Content,
		Achievements: req.Achievements,
		Challenges:   req.Challenges,
		Tomorrow:     req.Tomorrow,
		Status:       ReportSubmitted,
		SubmittedAt:  &now,
	}
	if req.WorkHours != nil {
		hours := decimal.NewFromFloat(*req.WorkHours)
		report.WorkHours = &hours
	}

	if err := c.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	log.Info("daily report submitted",
		"staffID", staffID,
		"date", date,
		"reportID", report.ID,
		"superseded", len(existing),
	)

	c.completeFullyReportedCycle(ctx, staffID, date, log)

	if c.eventBus != nil {
		if err := c.eventBus.Publish(events.STATUS_CHANNEL, events.Event{
			Type:    events.REPORT_SUBMITTED,
			StaffID: &staffID,
			Data:    map[string]any{"date": date, "reportId": report.ID.String()},
		}); err != nil {
			log.Warn("failed to publish report event", "staffID", staffID, "error", err)
		}
	}

	return report, nil
}

func (c *ReportsController) GetActiveReport(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*DailyReport, error) {
	if date == "" {
		date = utils.CurrentDate(c.clock)
	} else if _, err := utils.ParseDate(date); err != nil {
		return nil, apperrors.Validationf("invalid date: %v", err)
	}

	return c.reportRepo.GetActive(ctx, staffID, date)
}

// completeFullyReportedCycle mirrors the engine's auto-complete rule from the
// report side: if the current cycle has all three times, it becomes complete.
// Best-effort; failure leaves the cycle record to catch up on its next event.
func (c *ReportsController) completeFullyReportedCycle(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
	log logger.Logger,
) {
	record, err := c.attendanceRepo.GetCurrentCycle(ctx, staffID, date)
	if err != nil {
		log.Warn("failed to look up attendance record after report", "staffID", staffID, "date", date, "error", err)
		return
	}
	if record == nil || !record.AllTimesReported() {
		return
	}

	record.Status = AttendanceComplete
	if err := c.attendanceRepo.Update(ctx, record); err != nil {
		log.Warn("failed to auto-complete attendance record", "recordID", record.ID, "error", err)
	}
}
