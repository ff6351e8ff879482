package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"denticare-server/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestParseSlot_MapsTimeToShift(t *testing.T) {
	u := &bookingUsecase{loc: time.UTC}
	futureDate := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	date, shift, err := u.parseSlot(futureDate, "09:00:00", false)
	assert.NoError(t, err)
	assert.Equal(t, entity.ShiftMorning, shift)
	assert.Equal(t, futureDate, date.Format("2006-01-02"))
}

func TestParseSlot_MalformedDate(t *testing.T) {
	u := &bookingUsecase{loc: time.UTC}

	_, _, err := u.parseSlot("02-03-2026", "09:00:00", false)
	assert.ErrorIs(t, err, ErrInvalidAppointmentTime)
}

func TestParseSlot_TimeOutsideShiftWindows(t *testing.T) {
	u := &bookingUsecase{loc: time.UTC}
	futureDate := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	for _, tc := range []string{"07:30:00", "12:00:00", "20:00:00"} {
		_, _, err := u.parseSlot(futureDate, tc, false)
		assert.ErrorIs(t, err, ErrInvalidAppointmentTime, "time %s must be rejected", tc)
	}
}

func TestParseSlot_StaffChannelOpensAfternoonEarlier(t *testing.T) {
	u := &bookingUsecase{loc: time.UTC}
	futureDate := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	_, _, err := u.parseSlot(futureDate, "13:00:00", false)
	assert.ErrorIs(t, err, ErrInvalidAppointmentTime)

	_, shift, err := u.parseSlot(futureDate, "13:00:00", true)
	assert.NoError(t, err)
	assert.Equal(t, entity.ShiftAfternoon, shift)
}

func TestParseSlot_PastDate(t *testing.T) {
	u := &bookingUsecase{loc: time.UTC}

	_, _, err := u.parseSlot("2020-01-06", "09:00:00", false)
	assert.ErrorIs(t, err, ErrPastAppointment)
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert failed: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_appointments_active_slot",
	})
	assert.True(t, isUniqueViolation(err, "active_slot"))
	assert.False(t, isUniqueViolation(err, "dentist_schedules_cell"))
	assert.False(t, isUniqueViolation(errors.New("plain error"), "active_slot"))

	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "uq_appointments_active_slot"}
	assert.False(t, isUniqueViolation(fkErr, "active_slot"))
}

func TestIsTransientTxFailure(t *testing.T) {
	assert.True(t, isTransientTxFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isTransientTxFailure(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, isTransientTxFailure(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isTransientTxFailure(errors.New("connection reset")))
	assert.False(t, isTransientTxFailure(nil))
}
