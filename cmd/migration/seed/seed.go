package seed

import (
	"time"

	"kintai/config"
	"kintai/internal/logger"
	. "kintai/internal/models"
	"kintai/internal/utils"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			AuthUserID:  "seed-manager",
			DisplayName: "管理者 太郎",
			Email:       stringPtr("manager@example.com"),
			Role:        RoleManager,
			IsActive:    true,
		},
		{
			AuthUserID:  "seed-staff-1",
			DisplayName: "山田 花子",
			Email:       stringPtr("hanako@example.com"),
			Role:        RoleStaff,
			IsActive:    true,
		},
		{
			AuthUserID:  "seed-staff-2",
			DisplayName: "佐藤 次郎",
			Email:       stringPtr("jiro@example.com"),
			Role:        RoleStaff,
			IsActive:    true,
		},
	}

	for i := range users {
		var existing User
		if err := db.First(&existing, "auth_user_id = ?", users[i].AuthUserID).Error; err == nil {
			log.Info("User already exists", "authUserID", users[i].AuthUserID)
			users[i] = existing
			continue
		}
		log.Info("Seeding user", "displayName", users[i].DisplayName)
		if err := db.Create(&users[i]).Error; err != nil {
			return log.Err("failed to create user", err, "authUserID", users[i].AuthUserID)
		}
	}

	if err := seedAvailability(db, users, log); err != nil {
		return err
	}

	return nil
}

func seedAvailability(db *gorm.DB, users []User, log logger.Logger) error {
	var worksite Worksite
	if err := db.First(&worksite).Error; err != nil {
		log.Warn("no worksites found, skipping availability seed")
		return nil
	}

	today := time.Now().In(utils.JST()).Format(utils.DateLayout)

	for _, user := range users {
		if user.Role != RoleStaff {
			continue
		}

		var existing StaffAvailability
		if err := db.First(&existing, "staff_id = ? AND date = ?", user.ID, today).Error; err == nil {
			continue
		}

		availability := StaffAvailability{
			StaffID:    user.ID,
			Date:       today,
			WorksiteID: worksite.ID,
		}
		if err := db.Create(&availability).Error; err != nil {
			return log.Err("failed to create availability", err, "staffID", user.ID)
		}
	}

	log.Info("Availability seeded", "date", today)
	return nil
}
