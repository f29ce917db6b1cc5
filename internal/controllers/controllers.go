package controllers

import (
	"kintai/internal/events"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	attendanceController "kintai/internal/controllers/attendance"
	managerController "kintai/internal/controllers/manager"
	previousdayController "kintai/internal/controllers/previousday"
	reportsController "kintai/internal/controllers/reports"
)

type Controllers struct {
	Attendance  attendanceController.AttendanceControllerInterface
	Reports     reportsController.ReportsControllerInterface
	PreviousDay previousdayController.PreviousDayControllerInterface
	Manager     managerController.ManagerControllerInterface
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	clock utils.Clock,
) Controllers {
	return Controllers{
		Attendance:  attendanceController.New(repos, eventBus, clock),
		Reports:     reportsController.New(repos, eventBus, clock),
		PreviousDay: previousdayController.New(repos, eventBus, clock),
		Manager:     managerController.New(repos, clock),
	}
}
