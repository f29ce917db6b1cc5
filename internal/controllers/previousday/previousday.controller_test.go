package previousdayController

import (
	"context"
	"testing"
	"time"

	"kintai/internal/apperrors"
	. "kintai/internal/models"
	"kintai/internal/repositories"
	"kintai/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreviousDayRepo struct {
	reports []*PreviousDayReport
}

func (f *fakePreviousDayRepo) GetByReportDate(
	ctx context.Context,
	userID uuid.UUID,
	reportDate string,
) (*PreviousDayReport, error) {
	var found *PreviousDayReport
	for _, r := range f.reports {
		if r.UserID == userID && r.ReportDate == reportDate {
			found = r
		}
	}
	return found, nil
}

func (f *fakePreviousDayRepo) Create(ctx context.Context, report *PreviousDayReport) error {
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakePreviousDayRepo) Update(ctx context.Context, report *PreviousDayReport) error {
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
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeReportRepo) Update(ctx context.Context, report *DailyReport) error {
	return nil
}

// 22:00 JST on June 1st: filing tomorrow's plan late in the evening.
var testNow = time.Date(2024, 6, 1, 22, 0, 0, 0, utils.JST())

func newTestController(
	previousDayRepo *fakePreviousDayRepo,
	attendanceRepo *fakeAttendanceRepo,
	reportRepo *fakeReportRepo,
) PreviousDayControllerInterface {
	return New(repositories.Repository{
		PreviousDayReport: previousDayRepo,
		Attendance:        attendanceRepo,
		DailyReport:       reportRepo,
	}, nil, utils.NewFixedClock(testNow))
}

func validRequest() SubmitPreviousDayRequest {
	return SubmitPreviousDayRequest{
		NextWakeUpTime:     "2024-06-02T06:30:00+09:00",
		NextDepartureTime:  "2024-06-02T08:00:00+09:00",
		NextArrivalTime:    "2024-06-02T09:00:00+09:00",
		AppearancePhotoURL: "https://storage.example.com/photos/appearance.jpg",
		RoutePhotoURL:      "https://storage.example.com/photos/route.jpg",
	}
}

func TestSubmitPreviousDayReport_TargetsNextDay(t *testing.T) {
	previousDayRepo := &fakePreviousDayRepo{}
	controller := newTestController(previousDayRepo, &fakeAttendanceRepo{}, &fakeReportRepo{})
	userID := uuid.New()

	report, err := controller.SubmitPreviousDayReport(context.Background(), userID, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", report.ReportDate)
	assert.Equal(t, userID, report.UserID)
	assert.False(t, report.IsLinked())
}

func TestSubmitPreviousDayReport_InvalidTimes(t *testing.T) {
	controller := newTestController(&fakePreviousDayRepo{}, &fakeAttendanceRepo{}, &fakeReportRepo{})

	req := validRequest()
	req.NextDepartureTime = "eight o'clock"

	_, err := controller.SubmitPreviousDayReport(context.Background(), uuid.New(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestSubmitPreviousDayReport_RequiresPhotos(t *testing.T) {
	controller := newTestController(&fakePreviousDayRepo{}, &fakeAttendanceRepo{}, &fakeReportRepo{})

	req := validRequest()
	req.RoutePhotoURL = ""

	_, err := controller.SubmitPreviousDayReport(context.Background(), uuid.New(), req)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestSubmitPreviousDayReport_ArchivesOpenDay(t *testing.T) {
	previousDayRepo := &fakePreviousDayRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	reportRepo := &fakeReportRepo{}
	controller := newTestController(previousDayRepo, attendanceRepo, reportRepo)
	userID := uuid.New()
	ctx := context.Background()

	openRecord := &AttendanceRecord{
		StaffID: userID,
		Date:    "2024-06-01",
		Status:  AttendanceActive,
	}
	require.NoError(t, attendanceRepo.Create(ctx, openRecord))

	openReport := &DailyReport{StaffID: userID, Date: "2024-06-01", Content: "下書き", Status: ReportDraft}
	require.NoError(t, reportRepo.Create(ctx, openReport))

	_, err := controller.SubmitPreviousDayReport(ctx, userID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, AttendanceArchived, openRecord.Status)
	assert.Equal(t, ReportArchived, openReport.Status)
}

func TestSubmitPreviousDayReport_AllowsRepeatSubmission(t *testing.T) {
	previousDayRepo := &fakePreviousDayRepo{}
	controller := newTestController(previousDayRepo, &fakeAttendanceRepo{}, &fakeReportRepo{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := controller.SubmitPreviousDayReport(ctx, userID, validRequest())
	require.NoError(t, err)

	_, err = controller.SubmitPreviousDayReport(ctx, userID, validRequest())
	require.NoError(t, err)

	assert.Len(t, previousDayRepo.reports, 2)
}

func TestLinkToAttendanceRecord_DefaultsToRecordDate(t *testing.T) {
	previousDayRepo := &fakePreviousDayRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(previousDayRepo, attendanceRepo, &fakeReportRepo{})
	userID := uuid.New()
	ctx := context.Background()

	plan, err := controller.SubmitPreviousDayReport(ctx, userID, validRequest())
	require.NoError(t, err)

	record := &AttendanceRecord{StaffID: userID, Date: "2024-06-02", Status: AttendanceActive}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	result, err := controller.LinkToAttendanceRecord(ctx, userID, record.ID, "")
	require.NoError(t, err)
	assert.True(t, result.Linked)
	assert.False(t, result.AlreadyLinked)
	assert.Equal(t, plan.ID, result.PreviousDayReportID)
	require.NotNil(t, plan.ActualAttendanceRecordID)
	assert.Equal(t, record.ID, *plan.ActualAttendanceRecordID)
}

func TestLinkToAttendanceRecord_Idempotent(t *testing.T) {
	previousDayRepo := &fakePreviousDayRepo{}
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(previousDayRepo, attendanceRepo, &fakeReportRepo{})
	userID := uuid.New()
	ctx := context.Background()

	_, err := controller.SubmitPreviousDayReport(ctx, userID, validRequest())
	require.NoError(t, err)

	record := &AttendanceRecord{StaffID: userID, Date: "2024-06-02", Status: AttendanceActive}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	first, err := controller.LinkToAttendanceRecord(ctx, userID, record.ID, "")
	require.NoError(t, err)
	assert.True(t, first.Linked)

	second, err := controller.LinkToAttendanceRecord(ctx, userID, record.ID, "")
	require.NoError(t, err)
	assert.False(t, second.Linked)
	assert.True(t, second.AlreadyLinked)
}

func TestLinkToAttendanceRecord_NoPlanForDate(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(&fakePreviousDayRepo{}, attendanceRepo, &fakeReportRepo{})
	userID := uuid.New()
	ctx := context.Background()

	record := &AttendanceRecord{StaffID: userID, Date: "2024-06-02", Status: AttendanceActive}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	_, err := controller.LinkToAttendanceRecord(ctx, userID, record.ID, "")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestLinkToAttendanceRecord_ForeignRecordHidden(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{}
	controller := newTestController(&fakePreviousDayRepo{}, attendanceRepo, &fakeReportRepo{})
	ctx := context.Background()

	otherStaff := uuid.New()
	record := &AttendanceRecord{StaffID: otherStaff, Date: "2024-06-02", Status: AttendanceActive}
	require.NoError(t, attendanceRepo.Create(ctx, record))

	_, err := controller.LinkToAttendanceRecord(ctx, uuid.New(), record.ID, "")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
