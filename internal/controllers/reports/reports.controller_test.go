package reportsController

import (
	"context"
	"testing"
	"time"

	"kintai/internal/apperrors"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	reports []*DailyReport
}

func (f *fakeReportRepo) GetActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*DailyReport, error) {
	var found *DailyReport
	for _, r := range f.reports {
		if r.StaffID == staffID && r.Date == date && r.Status.IsActive() {
			found = r
		}
	}
	return found, nil
}

func (f *fakeReportRepo) ListActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*DailyReport, error) {
	var active []*DailyReport
	for _, r := range f.reports {
		if r.StaffID == staffID && r.Date == date && r.Status.IsActive() {
			active = append(active, r)
		}
	}
	return active, nil
}

func (f *fakeReportRepo) Create(ctx context.Context, report *DailyReport) error {
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeReportRepo) Update(ctx context.Context, report *DailyReport) error {
	return nil
}

type fakeAttendanceRepo struct {
	records []*AttendanceRecord
}

func (f *fakeAttendanceRepo) GetCurrentCycle(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	var found *AttendanceRecord
	for _, r := range f.records {
		if r.StaffID == staffID && r.Date == date && r.Status.IsCurrentCycle() {
			found = r
		}
	}
	return found, nil
}

func (f *fakeAttendanceRepo) GetLatest(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	var found *AttendanceRecord
	for _, r := range f.records {
		if r.StaffID == staffID && r.Date == date {
			found = r
		}
	}
	return found, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("attendance record not found")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *AttendanceRecord) error {
	record.ID = uuid.New()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record *AttendanceRecord) error {
	return nil
}

func (f *fakeAttendanceRepo) GetLatestForStaff(
	ctx context.Context,
	staffIDs []uuid.UUID,
	date string,
) (map[uuid.UUID]*AttendanceRecord, error) {
	return map[uuid.UUID]*AttendanceRecord{}, nil
}

var testNow = time.Date(2024, 6, 1, 18, 30, 0, 0, utils.JST())

const testDate = "2024-06-01"

func newTestController(
	reportRepo *fakeReportRepo,
	attendanceRepo *fakeAttendanceRepo,
) ReportsControllerInterface {
	return New(repositories.Repository{
		DailyReport: reportRepo,
		Attendance:  attendanceRepo,
	}, nil, utils.NewFixedClock(testNow))
}

func TestSubmitReport_RequiresContent(t *testing.T) {
	controller := newTestController(&fakeReportRepo{}, &fakeAttendanceRepo{})

	_, err := controller.SubmitReport(context.Background(), uuid.New(), SubmitReportRequest{})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestSubmitReport_CreatesSubmittedReport(t *testing.T) {
	reportRepo := &fakeReportRepo{}
	controller := newTestController(reportRepo, &fakeAttendanceRepo{})
	staffID := uuid.New()

	hours := 7.5
	report, err := controller.SubmitReport(context.Background(), staffID, SubmitReportRequest{
		Content:   "本日の業務内容",
		WorkHours: &hours,
	})

	require.NoError(t, err)
	assert.Equal(t, ReportSubmitted, report.Status)
	assert.Equal(t, testDate, report.Date)
	require.NotNil(t, report.SubmittedAt)
	assert.Equal(t, testNow, *report.SubmittedAt)
	require.NotNil(t, report.WorkHours)
	assert.True(t, report.WorkHours.Equal(decimal.NewFromFloat(7.5)))
}

func TestSubmitReport_SupersedesEarlierReports(t *testing.T) {
	reportRepo := &fakeReportRepo{}
	controller := newTestController(reportRepo, &fakeAttendanceRepo{})
	staffID := uuid.New()
	ctx := context.Background()

	first, err := controller.SubmitReport(ctx, staffID, SubmitReportRequest{Content: "一回目"})
	require.NoError(t, err)

	second, err := controller.SubmitReport(ctx, staffID, SubmitReportRequest{Content: "二回目"})
	require.NoError(t, err)

	assert.Equal(t, ReportSuperseded, first.Status)
	assert.Equal(t, ReportSubmitted, second.Status)

	active, err := reportRepo.GetActive(ctx, staffID, testDate)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestSubmitReport_CompletesFullyReportedCycle(t *testing.T) {
	reportRepo := &fakeReportRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(reportRepo, attendanceRepo)
	staffID := uuid.New()
	ctx := context.Background()

	wake := testNow.Add(-10 * time.Hour)
	depart := testNow.Add(-9 * time.Hour)
	arrive := testNow.Add(-8 * time.Hour)
	record := &AttendanceRecord{
		StaffID:       staffID,
		Date:          testDate,
		WakeUpTime:    &wake,
		DepartureTime: &depart,
		ArrivalTime:   &arrive,
		Status:        AttendanceActive,
	}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	_, err := controller.SubmitReport(ctx, staffID, SubmitReportRequest{Content: "報告"})
	require.NoError(t, err)

	assert.Equal(t, AttendanceComplete, record.Status)
}

func TestSubmitReport_LeavesPartialCycleOpen(t *testing.T) {
	reportRepo := &fakeReportRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(reportRepo, attendanceRepo)
	staffID := uuid.New()
	ctx := context.Background()

	wake := testNow.Add(-10 * time.Hour)
	record := &AttendanceRecord{
		StaffID:    staffID,
		Date:       testDate,
		WakeUpTime: &wake,
		Status:     AttendancePartial,
	}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	_, err := controller.SubmitReport(ctx, staffID, SubmitReportRequest{Content: "報告"})
	require.NoError(t, err)

	assert.Equal(t, AttendancePartial, record.Status)
}

func TestGetActiveReport_InvalidDate(t *testing.T) {
	controller := newTestController(&fakeReportRepo{}, &fakeAttendanceRepo{})

	_, err := controller.GetActiveReport(context.Background(), uuid.New(), "06/01/2024")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestGetActiveReport_NilWhenNone(t *testing.T) {
	controller := newTestController(&fakeReportRepo{}, &fakeAttendanceRepo{})

	report, err := controller.GetActiveReport(context.Background(), uuid.New(), "")

	require.NoError(t, err)
	assert.Nil(t, report)
}
