package repositories

import (
	"context"
	"errors"
	"time"

	"kintai/internal/apperrors"
	"kintai/internal/database"
	"kintai/internal/logger"
	. "kintai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CURRENT_CYCLE_CACHE_PREFIX = "current:"
	CURRENT_CYCLE_CACHE_EXPIRY = 5 * time.Minute
)

var currentCycleStatuses = []AttendanceStatus{
	AttendancePending,
	AttendancePartial,
	AttendanceActive,
}

type AttendanceRepository interface {
	// GetCurrentCycle returns the single live record for (staffID, date),
	// or nil when none exists. Most recently created wins ties.
	GetCurrentCycle(ctx context.Context, staffID uuid.UUID, date string) (*AttendanceRecord, error)

	// GetLatest returns the most recently created record for (staffID, date)
	// regardless of status, or nil when none exists.
	GetLatest(ctx context.Context, staffID uuid.UUID, date string) (*AttendanceRecord, error)

	GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error)
	Create(ctx context.Context, record *AttendanceRecord) error
	Update(ctx context.Context, record *AttendanceRecord) error

	// GetLatestForStaff returns the most recent record per staff member for
	// date, for the manager overview.
	GetLatestForStaff(ctx context.Context, staffIDs []uuid.UUID, date string) (map[uuid.UUID]*AttendanceRecord, error)
}

type attendanceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAttendanceRepository(db database.DB) AttendanceRepository {
	return &attendanceRepository{
		db:  db,
		log: logger.New("attendanceRepository"),
	}
}

func (r *attendanceRepository) GetCurrentCycle(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	log := r.log.Function("GetCurrentCycle")

	var record AttendanceRecord
	if found, err := r.getCachedCurrentCycle(ctx, staffID, date, &record); err == nil && found {
		return &record, nil
	}

	err := r.db.SQLWithContext(ctx).
		Where("staff_id = ? AND date = ? AND status IN ?", staffID, date, currentCycleStatuses).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(
			"failed to look up current attendance record",
			log.Err("failed to get current cycle", err, "staffID", staffID, "date", date),
		)
	}

	if err := r.cacheCurrentCycle(ctx, &record); err != nil {
		log.Warn("failed to cache current cycle", "staffID", staffID, "date", date, "error", err)
	}

	return &record, nil
}

func (r *attendanceRepository) GetLatest(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	log := r.log.Function("GetLatest")

	var record AttendanceRecord
	err := r.db.SQLWithContext(ctx).
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Storage(
			"failed to look up attendance record",
			log.Err("failed to get latest record", err, "staffID", staffID, "date", date),
		)
	}

	return &record, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
	log := r.log.Function("GetByID")

	var record AttendanceRecord
	err := r.db.SQLWithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("attendance record not found")
		}
		return nil, apperrors.Storage(
			"failed to look up attendance record",
			log.Err("failed to get record by id", err, "id", id),
		)
	}

	return &record, nil
}

func (r *attendanceRepository) Create(ctx context.Context, record *AttendanceRecord) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(record).Error; err != nil {
		return apperrors.Storage(
			"failed to create attendance record",
			log.Err("failed to create record", err, "staffID", record.StaffID, "date", record.Date),
		)
	}

	r.invalidateCurrentCycle(ctx, record.StaffID, record.Date)
	return nil
}

func (r *attendanceRepository) Update(ctx context.Context, record *AttendanceRecord) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(record).Error; err != nil {
		return apperrors.Storage(
			"failed to update attendance record",
			log.Err("failed to update record", err, "id", record.ID),
		)
	}

	r.invalidateCurrentCycle(ctx, record.StaffID, record.Date)
	return nil
}

func (r *attendanceRepository) GetLatestForStaff(
	ctx context.Context,
	staffIDs []uuid.UUID,
	date string,
) (map[uuid.UUID]*AttendanceRecord, error) {
	log := r.log.Function("GetLatestForStaff")

	var records []AttendanceRecord
	err := r.db.SQLWithContext(ctx).
		Where("staff_id IN ? AND date = ?", staffIDs, date).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Storage(
			"failed to list attendance records",
			log.Err("failed to list records for staff", err, "date", date),
		)
	}

	// Later rows overwrite earlier ones, leaving the most recent per staff.
	latest := make(map[uuid.UUID]*AttendanceRecord, len(records))
	for i := range records {
		latest[records[i].StaffID] = &records[i]
	}

	return latest, nil
}

func (r *attendanceRepository) getCachedCurrentCycle(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
	record *AttendanceRecord,
) (bool, error) {
	return database.NewCacheBuilder(r.db.Cache.Status, currentCycleCacheKey(staffID, date)).
		WithContext(ctx).
		Get(record)
}

func (r *attendanceRepository) cacheCurrentCycle(ctx context.Context, record *AttendanceRecord) error {
	return database.NewCacheBuilder(r.db.Cache.Status, currentCycleCacheKey(record.StaffID, record.Date)).
		WithStruct(record).
		WithTTL(CURRENT_CYCLE_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *attendanceRepository) invalidateCurrentCycle(ctx context.Context, staffID uuid.UUID, date string) {
	if err := database.NewCacheBuilder(r.db.Cache.Status, currentCycleCacheKey(staffID, date)).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("invalidateCurrentCycle").
			Warn("failed to invalidate current cycle cache", "staffID", staffID, "date", date, "error", err)
	}
}

func currentCycleCacheKey(staffID uuid.UUID, date string) string {
	return CURRENT_CYCLE_CACHE_PREFIX + staffID.String() + ":" + date
}
