package repositories

import (
	"kintai/internal/database"
)

type Repository struct {
	User              UserRepository
	Attendance        AttendanceRepository
	DailyReport       DailyReportRepository
	PreviousDayReport PreviousDayReportRepository
	Schedule          ScheduleRepository
	AccessLog         AccessLogRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:              NewUserRepository(db),
		Attendance:        NewAttendanceRepository(db),
		DailyReport:       NewDailyReportRepository(db),
		PreviousDayReport: NewPreviousDayReportRepository(db),
		Schedule:          NewScheduleRepository(db),
		AccessLog:         NewAccessLogRepository(db),
	}
}
