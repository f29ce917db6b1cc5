package initialize

import (
	"kintai/config"
	. "kintai/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeWorksites(db, log); err != nil {
		return log.Err("failed to initialize worksites", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeWorksites(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing worksite reference data")

	worksites := []Worksite{
		{Name: "本社", Address: stringPtr("東京都千代田区丸の内1-1-1")},
		{Name: "横浜オフィス", Address: stringPtr("神奈川県横浜市西区みなとみらい2-2-2")},
		{Name: "在宅勤務"},
	}

	for _, worksite := range worksites {
		var existing Worksite
		if err := db.First(&existing, "name = ?", worksite.Name).Error; err == nil {
			log.Debug("Worksite already exists", "name", worksite.Name)
			continue
		}
		log.Info("Initializing worksite", "name", worksite.Name)
		if err := db.Create(&worksite).Error; err != nil {
			return log.Err("failed to create worksite", err, "name", worksite.Name)
		}
	}

	log.Info("Worksite reference data initialized", "count", len(worksites))
	return nil
}

func stringPtr(s string) *string {
	return &s
}
