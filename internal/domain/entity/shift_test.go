package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftForTime_MorningWindow(t *testing.T) {
	shift, ok := ShiftForTime("08:00:00")
	assert.True(t, ok)
	assert.Equal(t, ShiftMorning, shift)

	shift, ok = ShiftForTime("10:59:59")
	assert.True(t, ok)
	assert.Equal(t, ShiftMorning, shift)
}

func TestShiftForTime_WindowsAreHalfOpen(t *testing.T) {
	// 11:00 is the morning end, not part of any guest window.
	_, ok := ShiftForTime("11:00:00")
	assert.False(t, ok)

	// 17:00 ends the afternoon and starts the evening.
	shift, ok := ShiftForTime("17:00:00")
	assert.True(t, ok)
	assert.Equal(t, ShiftEvening, shift)

	_, ok = ShiftForTime("20:00:00")
	assert.False(t, ok)
}

func TestShiftForTime_LunchGapRejected(t *testing.T) {
	for _, tc := range []string{"11:30:00", "12:00:00", "13:00:00", "13:59:59"} {
		_, ok := ShiftForTime(tc)
		assert.False(t, ok, "expected %s to be outside guest windows", tc)
	}

	shift, ok := ShiftForTime("14:00:00")
	assert.True(t, ok)
	assert.Equal(t, ShiftAfternoon, shift)
}

func TestShiftForStaffTime_AfternoonOpensEarlier(t *testing.T) {
	// 13:00 is valid for the staff follow-up channel only.
	shift, ok := ShiftForStaffTime("13:00:00")
	assert.True(t, ok)
	assert.Equal(t, ShiftAfternoon, shift)

	_, ok = ShiftForTime("13:00:00")
	assert.False(t, ok)

	// The earlier opening does not touch the other windows.
	_, ok = ShiftForStaffTime("12:59:59")
	assert.False(t, ok)
	shift, ok = ShiftForStaffTime("09:30:00")
	assert.True(t, ok)
	assert.Equal(t, ShiftMorning, shift)
}

func TestShiftForTime_MalformedInput(t *testing.T) {
	for _, tc := range []string{"", "8am", "25:00:00", "14:00"} {
		_, ok := ShiftForTime(tc)
		assert.False(t, ok, "expected %q to be rejected", tc)
	}
}

func TestIsValidShift(t *testing.T) {
	assert.True(t, IsValidShift(ShiftMorning))
	assert.True(t, IsValidShift(ShiftAfternoon))
	assert.True(t, IsValidShift(ShiftEvening))
	assert.False(t, IsValidShift(Shift("night")))
	assert.False(t, IsValidShift(Shift("")))
}

func TestShiftStartTime(t *testing.T) {
	assert.Equal(t, "08:00:00", ShiftStartTime(ShiftMorning))
	assert.Equal(t, "14:00:00", ShiftStartTime(ShiftAfternoon))
	assert.Equal(t, "17:00:00", ShiftStartTime(ShiftEvening))
}
