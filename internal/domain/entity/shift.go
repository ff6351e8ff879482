package entity

import "time"

// Shift identifies one of the clinic's three fixed daily booking windows.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// ShiftWindow is a half-open [Start, End) time-of-day window, HH:MM:SS.
type ShiftWindow struct {
	Start string
	End   string
}

// shiftWindows is the single source of truth for shift time windows. Every
// component that needs the shift -> time mapping reads it from here.
var shiftWindows = map[Shift]ShiftWindow{
	ShiftMorning:   {Start: "08:00:00", End: "11:00:00"},
	ShiftAfternoon: {Start: "14:00:00", End: "17:00:00"},
	ShiftEvening:   {Start: "17:00:00", End: "20:00:00"},
}

// followUpAfternoonStart widens the afternoon window for staff-initiated
// follow-up bookings, which may start at 13:00.
const followUpAfternoonStart = "13:00:00"

// AllShifts returns the shifts in chronological order.
func AllShifts() []Shift {
	return []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}
}

// IsValidShift reports whether s is a known shift identifier.
func IsValidShift(s Shift) bool {
	_, ok := shiftWindows[s]
	return ok
}

// WindowOf returns the time window for a shift.
func WindowOf(s Shift) (ShiftWindow, bool) {
	w, ok := shiftWindows[s]
	return w, ok
}

// ShiftStartTime returns the canonical start time-of-day for a shift.
func ShiftStartTime(s Shift) string {
	return shiftWindows[s].Start
}

// ShiftForTime maps an appointment time (HH:MM:SS) to its shift. Times
// outside every window return false.
func ShiftForTime(appointmentTime string) (Shift, bool) {
	return shiftForTime(appointmentTime, false)
}

// ShiftForStaffTime is the follow-up variant: the afternoon window opens at
// 13:00 instead of 14:00.
func ShiftForStaffTime(appointmentTime string) (Shift, bool) {
	return shiftForTime(appointmentTime, true)
}

func shiftForTime(appointmentTime string, staff bool) (Shift, bool) {
	t, err := secondsOfDay(appointmentTime)
	if err != nil {
		return "", false
	}

	for _, shift := range AllShifts() {
		window := shiftWindows[shift]
		start := window.Start
		if staff && shift == ShiftAfternoon {
			start = followUpAfternoonStart
		}
		startSec, _ := secondsOfDay(start)
		endSec, _ := secondsOfDay(window.End)
		if t >= startSec && t < endSec {
			return shift, true
		}
	}
	return "", false
}

func secondsOfDay(value string) (int, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}
