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

type PreviousDayReportRepository interface {
	// GetByReportDate returns the most recently created plan targeting
	// (userID, reportDate), or nil when none exists.
	GetByReportDate(ctx context.Context, userID uuid.UUID, reportDate string) (*PreviousDayReport, error)

	Create(ctx context.Context, report *PreviousDayReport) error
	Update(ctx context.Context, report *PreviousDayReport) error
}

type previousDayReportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPreviousDayReportRepository(db database.DB) PreviousDayReportRepository {
	return &previousDayReportRepository{
		db:  db,
		log: logger.New("previousDayReportRepository"),
	}
}

func (r *previousDayReportRepository) GetByReportDate(
	ctx context.Context,
	userID uuid.UUID,
	reportDate string,
) (*PreviousDayReport, error) {
	log := r.log.Function("GetByReportDate")

	var report PreviousDayReport
	err := r.db.SQLWithContext(ctx).
		Where("user_id = ? AND report_date = ?", userID, reportDate).
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(
			"failed to look up previous day report",
			log.Err("failed to get report by date", err, "userID", userID, "reportDate", reportDate),
		)
	}

	return &report, nil
}

func (r *previousDayReportRepository) Create(ctx context.Context, report *PreviousDayReport) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(report).Error; err != nil {
		return apperrors.Storage(
			"failed to create previous day report",
			log.Err("failed to create report", err, "userID", report.UserID, "reportDate", report.ReportDate),
		)
	}

	return nil
}

func (r *previousDayReportRepository) Update(ctx context.Context, report *PreviousDayReport) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(report).Error; err != nil {
		return apperrors.Storage(
			"failed to update previous day report",
			log.Err("failed to update report", err, "id", report.ID),
		)
	}

	return nil
}
