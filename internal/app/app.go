package app

import (
	"context"

	"kintai/config"
	"kintai/internal/controllers"
	"kintai/internal/database"
	"kintai/internal/events"
	"kintai/internal/handlers/middleware"
	"kintai/internal/jobs"
	"kintai/internal/logger"
	"kintai/internal/repositories"
	"kintai/internal/services"
	"kintai/internal/utils"
	"kintai/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config
	Clock      utils.Clock

	SchedulerService *services.SchedulerService

	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)
	clock := utils.NewClock()

	repos := repositories.New(db)
	controllers := controllers.New(repos, eventBus, clock)
	middleware := middleware.New(db, config, repos)

	websocket, err := websockets.New(db, eventBus, config, repos.User)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	schedulerService := services.NewSchedulerService()

	if config.SchedulerEnabled {
		retentionJob := jobs.NewAccessLogRetentionJob(
			repos.AccessLog,
			config.AccessLogRetentionDays,
			services.Daily,
		)
		if err := schedulerService.AddJob(retentionJob); err != nil {
			return &App{}, log.Err("failed to register access log retention job", err)
		}

		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:         db,
		Config:           config,
		Clock:            clock,
		Middleware:       middleware,
		SchedulerService: schedulerService,
		Repos:            repos,
		Controllers:      controllers,
		Websocket:        websocket,
		EventBus:         eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.SchedulerService,
		a.Clock,
		a.Repos.User,
		a.Repos.Attendance,
		a.Repos.DailyReport,
		a.Repos.PreviousDayReport,
		a.Repos.Schedule,
		a.Repos.AccessLog,
		a.Controllers.Attendance,
		a.Controllers.Reports,
		a.Controllers.PreviousDay,
		a.Controllers.Manager,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
