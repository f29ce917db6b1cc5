package middleware

import (
	"kintai/config"
	"kintai/internal/database"
	"kintai/internal/logger"
	"kintai/internal/repositories"
)

type Middleware struct {
	DB            database.DB
	Config        config.Config
	userRepo      repositories.UserRepository
	accessLogRepo repositories.AccessLogRepository
	log           logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
) Middleware {
	return Middleware{
		DB:            db,
		Config:        config,
		userRepo:      repos.User,
		accessLogRepo: repos.AccessLog,
		log:           logger.New("middleware"),
	}
}
