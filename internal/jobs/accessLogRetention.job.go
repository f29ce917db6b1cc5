package jobs

import (
	"context"
	"time"

	"kintai/internal/repositories"
	"kintai/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type AccessLogRetentionJob struct {
	accessLogRepo repositories.AccessLogRepository
	retentionDays int
	log           logger.Logger
	schedule      services.Schedule
}

func NewAccessLogRetentionJob(
	accessLogRepo repositories.AccessLogRepository,
	retentionDays int,
	schedule services.Schedule,
) *AccessLogRetentionJob {
	log := logger.New("accessLogRetentionJob")
	log.Info("Creating access log retention job", "retentionDays", retentionDays, "schedule", schedule)

	return &AccessLogRetentionJob{
		accessLogRepo: accessLogRepo,
		retentionDays: retentionDays,
		log:           log,
		schedule:      schedule,
	}
}

func (j *AccessLogRetentionJob) Name() string {
	return "AccessLogRetention"
}

func (j *AccessLogRetentionJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	log.Info("Pruning access logs", "cutoff", cutoff)

	deleted, err := j.accessLogRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return log.Err("failed to prune access logs", err)
	}

	log.Info("Access log pruning completed", "deleted", deleted)
	return nil
}

func (j *AccessLogRetentionJob) Schedule() services.Schedule {
	return j.schedule
}
