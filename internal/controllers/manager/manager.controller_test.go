package managerController

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

type fakeUserRepo struct {
	staff []*User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	for _, u := range f.staff {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*User, error) {
	for _, u := range f.staff {
		if u.AuthUserID == authUserID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindOrCreateByAuthUserID(ctx context.Context, user *User) (*User, error) {
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *User) error {
	return nil
}

func (f *fakeUserRepo) ListActiveStaff(ctx context.Context) ([]*User, error) {
	return f.staff, nil
}

type fakeAttendanceRepo struct {
	records []*AttendanceRecord
}

func (f *fakeAttendanceRepo) GetCurrentCycle(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetLatest(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*AttendanceRecord, error) {
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
	result := make(map[uuid.UUID]*AttendanceRecord)
	for _, r := range f.records {
		if r.Date != date {
			continue
		}
		for _, id := range staffIDs {
			if r.StaffID == id {
				result[id] = r
			}
		}
	}
	return result, nil
}

type fakeReportRepo struct {
	reports []*DailyReport
}

func (f *fakeReportRepo) GetActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) (*DailyReport, error) {
	for _, r := range f.reports {
		if r.StaffID == staffID && r.Date == date && r.Status.IsActive() {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListActive(
	ctx context.Context,
	staffID uuid.UUID,
	date string,
) ([]*DailyReport, error) {
	return nil, nil
}

func (f *fakeReportRepo) Create(ctx context.Context, report *DailyReport) error {
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeReportRepo) Update(ctx context.Context, report *DailyReport) error {
	return nil
}

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, utils.JST())

const testDate = "2024-06-01"

func newStaff(name string) *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		DisplayName:   name,
		Role:          RoleStaff,
		IsActive:      true,
	}
}

func TestGetStaffOverview_EmptyWithoutStaff(t *testing.T) {
	controller := New(repositories.Repository{
		User:        &fakeUserRepo{},
		Attendance:  &fakeAttendanceRepo{},
		DailyReport: &fakeReportRepo{},
	}, utils.NewFixedClock(testNow))

	overview, err := controller.GetStaffOverview(context.Background())

	require.NoError(t, err)
	assert.Empty(t, overview)
}

func TestGetStaffOverview_ReportsPerStaffState(t *testing.T) {
	reporting := newStaff("山田 花子")
	idle := newStaff("佐藤 次郎")

	wake := testNow.Add(-3 * time.Hour)
	attendanceRepo := &fakeAttendanceRepo{
		records: []*AttendanceRecord{
			{
				StaffID:    reporting.ID,
				Date:       testDate,
				WakeUpTime: &wake,
				Status:     AttendancePartial,
			},
		},
	}
	reportRepo := &fakeReportRepo{
		reports: []*DailyReport{
			{StaffID: reporting.ID, Date: testDate, Content: "報告", Status: ReportSubmitted},
		},
	}

	controller := New(repositories.Repository{
		User:        &fakeUserRepo{staff: []*User{reporting, idle}},
		Attendance:  attendanceRepo,
		DailyReport: reportRepo,
	}, utils.NewFixedClock(testNow))

	overview, err := controller.GetStaffOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 2)

	assert.Equal(t, reporting.ID, overview[0].StaffID)
	assert.Equal(t, AttendancePartial, overview[0].Status)
	assert.True(t, overview[0].WakeUpReported)
	assert.False(t, overview[0].DepartureReported)
	assert.True(t, overview[0].DailyReportSubmitted)
	assert.False(t, overview[0].DayCompleted)

	assert.Equal(t, idle.ID, overview[1].StaffID)
	assert.False(t, overview[1].WakeUpReported)
	assert.False(t, overview[1].DailyReportSubmitted)
}

func TestGetStaffOverview_CompletedDay(t *testing.T) {
	staff := newStaff("山田 花子")

	wake := testNow.Add(-5 * time.Hour)
	depart := testNow.Add(-4 * time.Hour)
	arrive := testNow.Add(-3 * time.Hour)
	attendanceRepo := &fakeAttendanceRepo{
		records: []*AttendanceRecord{
			{
				StaffID:       staff.ID,
				Date:          testDate,
				WakeUpTime:    &wake,
				DepartureTime: &depart,
				ArrivalTime:   &arrive,
				Status:        AttendanceComplete,
			},
		},
	}

	controller := New(repositories.Repository{
		User:        &fakeUserRepo{staff: []*User{staff}},
		Attendance:  attendanceRepo,
		DailyReport: &fakeReportRepo{},
	}, utils.NewFixedClock(testNow))

	overview, err := controller.GetStaffOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.True(t, overview[0].DayCompleted)
	assert.True(t, overview[0].ArrivalReported)
}
