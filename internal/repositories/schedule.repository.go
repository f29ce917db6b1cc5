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

// ScheduleRepository reads staff availability and worksite lookup data.
// The attendance engine never mutates these rows.
type ScheduleRepository interface {
	GetAvailability(ctx context.Context, staffID uuid.UUID, date string) (*StaffAvailability, error)
}

type scheduleRepository struct {
	db  database.DB
	log logger.Logger
}

func NewScheduleRepository(db database.DB) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: logger.New("scheduleRepository"),
	}
}

func (r *scheduleRepository) GetAvailability(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*StaffAvailability, error) {
	log := r.log.Function("GetAvailability")

	var availability StaffAvailability
	err := r.db.SQLWithContext(ctx).
		Preload("Worksite").
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("created_at DESC").
		First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(
			"failed to look up staff availability",
			log.Err("failed to get availability", err, "staffID", staffID, "date", date),
		)
	}

	return &availability, nil
}
