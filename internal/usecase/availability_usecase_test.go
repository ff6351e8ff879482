package usecase

import (
	"testing"
	"time"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestWeekStartDate_MidWeek(t *testing.T) {
	// Wednesday 2026-03-04
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	got := weekStartDate(now, 0)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestWeekStartDate_SundayBelongsToPrecedingMonday(t *testing.T) {
	// Sunday 2026-03-08 is still part of the week starting Monday 2026-03-02.
	now := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	got := weekStartDate(now, 0)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStartDate_MondayIsItsOwnWeekStart(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got := weekStartDate(now, 0)
	assert.Equal(t, now, got)
}

func TestWeekStartDate_NextWeekOffset(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	got := weekStartDate(now, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStartDate_PreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	assert.NoError(t, err)
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, loc)

	got := weekStartDate(now, 0)
	assert.Equal(t, loc, got.Location())
}

func TestBuildWeekGrid_AvailableNeedsScheduleAndFreeSlot(t *testing.T) {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	monday := weekStart
	tuesday := weekStart.AddDate(0, 0, 1)

	schedules := []entity.DentistSchedule{
		{WorkDate: monday, Shift: entity.ShiftMorning, IsActive: boolPtr(true), Status: entity.ScheduleStatusApproved},
		{WorkDate: monday, Shift: entity.ShiftAfternoon, IsActive: boolPtr(true), Status: entity.ScheduleStatusApproved},
		{WorkDate: tuesday, Shift: entity.ShiftEvening, IsActive: boolPtr(true), Status: entity.ScheduleStatusApproved},
	}
	appointments := []entity.Appointment{
		{AppointmentDate: monday, Shift: entity.ShiftAfternoon, Status: entity.AppointmentStatusConfirmed},
	}

	days := buildWeekGrid(weekStart, schedules, appointments)
	assert.Len(t, days, 7)
	assert.Equal(t, "2026-03-02", days[0].Date)

	mondayCells := cellsByShift(t, days[0])
	assert.True(t, mondayCells["morning"].Available)
	assert.False(t, mondayCells["afternoon"].Available, "occupied slot must not be available")
	assert.False(t, mondayCells["evening"].Available, "unscheduled shift must not be available")

	tuesdayCells := cellsByShift(t, days[1])
	assert.True(t, tuesdayCells["evening"].Available)
}

func TestBuildWeekGrid_PendingOrInactiveCellsNotBookable(t *testing.T) {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedules := []entity.DentistSchedule{
		{WorkDate: weekStart, Shift: entity.ShiftMorning, IsActive: boolPtr(true), Status: entity.ScheduleStatusPending},
		{WorkDate: weekStart, Shift: entity.ShiftAfternoon, IsActive: boolPtr(false), Status: entity.ScheduleStatusApproved},
	}

	days := buildWeekGrid(weekStart, schedules, nil)
	cells := cellsByShift(t, days[0])
	assert.False(t, cells["morning"].Available)
	assert.False(t, cells["afternoon"].Available)
}

func TestBuildWeekGrid_CanceledAppointmentFreesSlot(t *testing.T) {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	schedules := []entity.DentistSchedule{
		{WorkDate: weekStart, Shift: entity.ShiftMorning, IsActive: boolPtr(true), Status: entity.ScheduleStatusApproved},
	}
	appointments := []entity.Appointment{
		{AppointmentDate: weekStart, Shift: entity.ShiftMorning, Status: entity.AppointmentStatusCanceled},
	}

	days := buildWeekGrid(weekStart, schedules, appointments)
	assert.True(t, cellsByShift(t, days[0])["morning"].Available)
}

func TestBuildWeekGrid_CellsCarryShiftStartTimes(t *testing.T) {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	days := buildWeekGrid(weekStart, nil, nil)
	cells := cellsByShift(t, days[0])
	assert.Equal(t, "08:00:00", cells["morning"].StartTime)
	assert.Equal(t, "14:00:00", cells["afternoon"].StartTime)
	assert.Equal(t, "17:00:00", cells["evening"].StartTime)
}

func cellsByShift(t *testing.T, day dto.DaySlots) map[string]dto.SlotCell {
	t.Helper()
	out := make(map[string]dto.SlotCell, len(day.Cells))
	for _, c := range day.Cells {
		out[c.Shift] = c
	}
	return out
}
