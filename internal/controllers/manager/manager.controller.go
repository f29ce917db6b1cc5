// Package managerController builds the aggregated staff overview shown on
// manager dashboards.
package managerController

import (
	"context"

	"kintai/internal/logger"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
)

// StaffStatus is one row of the manager overview: who the staff member is
// and where their day stands.
type StaffStatus struct {
	StaffID              uuid.UUID        `json:"staffId"`
	DisplayName          string           `json:"displayName"`
	Date                 string           `json:"date"`
	Status               AttendanceStatus `json:"status"`
	WakeUpReported       bool             `json:"wakeUpReported"`
	DepartureReported    bool             `json:"departureReported"`
	ArrivalReported      bool             `json:"arrivalReported"`
	DailyReportSubmitted bool             `json:"dailyReportSubmitted"`
	DayCompleted         bool             `json:"dayCompleted"`
}

type ManagerControllerInterface interface {
	GetStaffOverview(ctx context.Context) ([]StaffStatus, error)
}

type ManagerController struct {
	userRepo       repositories.UserRepository
	attendanceRepo repositories.AttendanceRepository
	reportRepo     repositories.DailyReportRepository
	clock          utils.Clock
	log            logger.Logger
}

func New(repos repositories.Repository, clock utils.Clock) ManagerControllerInterface {
	return &ManagerController{
		userRepo:       repos.User,
		attendanceRepo: repos.Attendance,
		reportRepo:     repos.DailyReport,
		clock:          clock,
		log:            logger.New("managerController"),
	}
}

func (c *ManagerController) GetStaffOverview(ctx context.Context) ([]StaffStatus, error) {
	log := c.log.Function("GetStaffOverview")

	staff, err := c.userRepo.ListActiveStaff(ctx)
	if err != nil {
		return nil, err
	}

	today := utils.CurrentDate(c.clock)

	staffIDs := make([]uuid.UUID, 0, len(staff))
	for _, member := range staff {
		staffIDs = append(staffIDs, member.ID)
	}

	records := map[uuid.UUID]*AttendanceRecord{}
	if len(staffIDs) > 0 {
		records, err = c.attendanceRepo.GetLatestForStaff(ctx, staffIDs, today)
		if err != nil {
			return nil, err
		}
	}

	overview := make([]StaffStatus, 0, len(staff))
	for _, member := range staff {
		status := StaffStatus{
			StaffID:     member.ID,
			DisplayName: member.DisplayName,
			Date:        today,
		}

		if record, ok := records[member.ID]; ok {
			status.Status = record.Status
			status.WakeUpReported = record.WakeUpTime != nil
			status.DepartureReported = record.DepartureTime != nil
			status.ArrivalReported = record.ArrivalTime != nil
			status.DayCompleted = record.Status == AttendanceComplete
		}

		report, err := c.reportRepo.GetActive(ctx, member.ID, today)
		if err != nil {
			log.Warn("failed to load daily report for overview", "staffID", member.ID, "error", err)
		} else {
			status.DailyReportSubmitted = report != nil && report.Status == ReportSubmitted
		}

		overview = append(overview, status)
	}

	return overview, nil
}
