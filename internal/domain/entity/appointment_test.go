package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func confirmedAppointmentAt(t *testing.T, loc *time.Location, start time.Time) *Appointment {
	t.Helper()
	return &Appointment{
		Status:          AppointmentStatusConfirmed,
		AppointmentDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		AppointmentTime: start.Format("15:04:05"),
	}
}

func TestCanTransitionTo_FromConfirmed(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusConfirmed}
	assert.True(t, a.CanTransitionTo(AppointmentStatusAttended))
	assert.True(t, a.CanTransitionTo(AppointmentStatusAbsented))
	assert.True(t, a.CanTransitionTo(AppointmentStatusCanceled))
	assert.False(t, a.CanTransitionTo(AppointmentStatusConfirmed))
}

func TestCanTransitionTo_TerminalStatesAreFinal(t *testing.T) {
	for _, status := range []AppointmentStatus{AppointmentStatusAttended, AppointmentStatusAbsented, AppointmentStatusCanceled} {
		a := &Appointment{Status: status}
		for _, target := range []AppointmentStatus{AppointmentStatusConfirmed, AppointmentStatusAttended, AppointmentStatusAbsented, AppointmentStatusCanceled} {
			assert.False(t, a.CanTransitionTo(target), "%s -> %s must be rejected", status, target)
		}
	}
}

func TestOccupiesSlot(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusConfirmed}).OccupiesSlot())
	assert.True(t, (&Appointment{Status: AppointmentStatusAttended}).OccupiesSlot())
	assert.True(t, (&Appointment{Status: AppointmentStatusAbsented}).OccupiesSlot())
	assert.False(t, (&Appointment{Status: AppointmentStatusCanceled}).OccupiesSlot())
	assert.False(t, (&Appointment{Status: AppointmentStatusConfirmed, IsDeleted: true}).OccupiesSlot())
}

func TestCancelableByPatient_OutsideLeadTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	// Appointment starts in 3 hours; the 2 hour lead time is met.
	a := confirmedAppointmentAt(t, loc, now.Add(3*time.Hour))

	assert.True(t, a.CancelableByPatient(now, loc))
}

func TestCancelableByPatient_InsideLeadTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	// Only 90 minutes to go; the window has closed.
	a := confirmedAppointmentAt(t, loc, now.Add(90*time.Minute))

	assert.False(t, a.CancelableByPatient(now, loc))
}

func TestCancelableByPatient_ExactlyAtDeadline(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	// Exactly the lead time away still counts as cancelable.
	a := confirmedAppointmentAt(t, loc, now.Add(PatientCancelLeadTime))

	assert.True(t, a.CancelableByPatient(now, loc))
}

func TestCancelableByPatient_TerminalState(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	a := confirmedAppointmentAt(t, loc, now.Add(48*time.Hour))
	a.Status = AppointmentStatusCanceled

	assert.False(t, a.CancelableByPatient(now, loc))
}

func TestCancelableByStaff_IgnoresLeadTime(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)
	// 10 minutes before start, staff can still cancel.
	a := confirmedAppointmentAt(t, loc, now.Add(10*time.Minute))

	assert.True(t, a.CancelableByStaff())

	a.Status = AppointmentStatusAttended
	assert.False(t, a.CancelableByStaff())
}

func TestRemainingTimeText(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)

	a := confirmedAppointmentAt(t, loc, now.Add(PatientCancelLeadTime+26*time.Hour+30*time.Minute))
	assert.Equal(t, "1d 2h 30m until cancellation closes", a.RemainingTimeText(now, loc))

	a = confirmedAppointmentAt(t, loc, now.Add(PatientCancelLeadTime+45*time.Minute))
	assert.Equal(t, "45m until cancellation closes", a.RemainingTimeText(now, loc))

	a = confirmedAppointmentAt(t, loc, now.Add(time.Hour))
	assert.Equal(t, "cancellation window closed", a.RemainingTimeText(now, loc))
}

func TestStartAt_UsesClinicTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	assert.NoError(t, err)

	a := &Appointment{
		AppointmentDate: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		AppointmentTime: "09:30:00",
	}

	start, err := a.StartAt(loc)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, loc), start)
}
