package repositories

import (
	"context"
	"errors"

	"kintai/internal/apperrors"
	"kintai/internal/database"
	"kintai/internal/logger"
	. "kintai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var activeReportStatuses = []ReportStatus{ReportDraft, ReportSubmitted}

type DailyReportRepository interface {
	// GetActive returns the most recently created draft or submitted report
	// for (staffID, date), or nil when none exists.
	GetActive(ctx context.Context, staffID uuid.UUID, date string) (*DailyReport, error)

	// ListActive returns every draft or submitted report for (staffID, date),
	// oldest first.
	ListActive(ctx context.Context, staffID uuid.UUID, date string) ([]*DailyReport, error)

	Create(ctx context.Context, report *DailyReport) error
	Update(ctx context.Context, report *DailyReport) error
}

type dailyReportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDailyReportRepository(db database.DB) DailyReportRepository {
	return &dailyReportRepository{
		db:  db,
		log: logger.New("dailyReportRepository"),
	}
}

func (r *dailyReportRepository) GetActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*DailyReport, error) {
	log := r.log.Function("GetActive")

	var report DailyReport
	err := r.db.SQLWithContext(ctx).
		Where("staff_id = ? AND date = ? AND status IN ?", staffID, date, activeReportStatuses).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(
			"failed to look up daily report",
			log.Err("failed to get active report", err, "staffID", staffID, "date", date),
		)
	}

	return &report, nil
}

func (r *dailyReportRepository) ListActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*DailyReport, error) {
	log := r.log.Function("ListActive")

	var reports []*DailyReport
	err := r.db.SQLWithContext(ctx).
		Where("staff_id = ? AND date = ? AND status IN ?", staffID, date, activeReportStatuses).
		Order("created_at ASC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Storage(
			"failed to list daily reports",
			log.Err("failed to list active reports", err, "staffID", staffID, "date", date),
		)
	}

	return reports, nil
}

func (r *dailyReportRepository) Create(ctx context.Context, report *DailyReport) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(report).Error; err != nil {
		return apperrors.Storage(
			"failed to create daily report",
			log.Err("failed to create report", err, "staffID", report.StaffID, "date", report.Date),
		)
	}

	return nil
}

func (r *dailyReportRepository) Update(ctx context.Context, report *DailyReport) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(report).Error; err != nil {
		return apperrors.Storage(
			"failed to update daily report",
			log.Err("failed to update report", err, "id", report.ID),
		)
	}

	return nil
}
