package database

import (
	"kintai/internal/logger"
	"kintai/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.User{},
		&models.AttendanceRecord{},
		&models.DailyReport{},
		&models.PreviousDayReport{},
		&models.Worksite{},
		&models.StaffAvailability{},
		&models.AccessLog{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		// Fast current-cycle lookup: one live record per (staff, date)
		"CREATE INDEX IF NOT EXISTS idx_attendance_staff_date_status ON attendance_records(staff_id, date, status)",
		"CREATE INDEX IF NOT EXISTS idx_attendance_created_at ON attendance_records(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_daily_reports_staff_date_status ON daily_reports(staff_id, date, status)",
		"CREATE INDEX IF NOT EXISTS idx_previous_day_reports_user_date ON previous_day_reports(user_id, report_date)",
		"CREATE INDEX IF NOT EXISTS idx_access_logs_created_at ON access_logs(created_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
