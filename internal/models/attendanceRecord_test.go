package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceStatus_IsCurrentCycle(t *testing.T) {
	tests := []struct {
		name     string
		status   AttendanceStatus
		expected bool
	}{
		{name: "pending is live", status: AttendancePending, expected: true},
		{name: "partial is live", status: AttendancePartial, expected: true},
		{name: "active is live", status: AttendanceActive, expected: true},
		{name: "complete is historical", status: AttendanceComplete, expected: false},
		{name: "reset is historical", status: AttendanceReset, expected: false},
		{name: "archived is historical", status: AttendanceArchived, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsCurrentCycle())
		})
	}
}

func TestAttendanceRecord_AllTimesReported(t *testing.T) {
	now := time.Now()

	t.Run("All three times reported", func(t *testing.T) {
		record := &AttendanceRecord{
			WakeUpTime:    &now,
			DepartureTime: &now,
			ArrivalTime:   &now,
		}
		assert.True(t, record.AllTimesReported())
	})

	t.Run("Missing arrival", func(t *testing.T) {
		record := &AttendanceRecord{
			WakeUpTime:    &now,
			DepartureTime: &now,
		}
		assert.False(t, record.AllTimesReported())
	})

	t.Run("No times reported", func(t *testing.T) {
		record := &AttendanceRecord{}
		assert.False(t, record.AllTimesReported())
	})
}

func TestReportStatus_IsActive(t *testing.T) {
	assert.True(t, ReportDraft.IsActive())
	assert.True(t, ReportSubmitted.IsActive())
	assert.False(t, ReportSuperseded.IsActive())
	assert.False(t, ReportArchived.IsActive())
}
