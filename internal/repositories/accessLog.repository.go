package repositories

import (
	"context"
	"time"

	"kintai/internal/apperrors"
	"kintai/internal/database"
	"kintai/internal/logger"
	. "kintai/internal/models"
)

type AccessLogRepository interface {
	Create(ctx context.Context, entry *AccessLog) error

	// DeleteOlderThan purges entries created before cutoff and returns the
	// number of rows removed. Access logs are the one table with a retention
	// window instead of indefinite archival.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type accessLogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAccessLogRepository(db database.DB) AccessLogRepository {
	return &accessLogRepository{
		db:  db,
		log: logger.New("accessLogRepository"),
	}
}

func (r *accessLogRepository) Create(ctx context.Context, entry *AccessLog) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(entry).Error; err != nil {
		return apperrors.Storage(
			"failed to write access log",
			log.Err("failed to create access log", err, "path", entry.Path),
		)
	}

	return nil
}

func (r *accessLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := r.log.Function("DeleteOlderThan")

	result := r.db.SQLWithContext(ctx).
		Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&AccessLog{})
	if result.Error != nil {
		return 0, apperrors.Storage(
			"failed to purge access logs",
			log.Err("failed to delete old access logs", result.Error, "cutoff", cutoff),
		)
	}

	return result.RowsAffected, nil
}
