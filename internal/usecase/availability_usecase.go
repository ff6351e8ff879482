package usecase

import (
	"context"
	"errors"
	"time"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
	"denticare-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDentistNotFound   = errors.New("dentist not found")
	ErrInvalidWeekOffset = errors.New("week offset must be 0 or 1")
)

// maxWeekOffset fixes the two-week booking horizon: only the current and the
// next calendar week are exposed for booking.
const maxWeekOffset = 1

type AvailabilityUsecase interface {
	GetWeeklySlots(ctx context.Context, dentistID uuid.UUID, weekOffset int) (*dto.SlotGridResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	dentistRepo     repository.DentistProfileRepository
	scheduleRepo    repository.DentistScheduleRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	dentistRepo repository.DentistProfileRepository,
	scheduleRepo repository.DentistScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		dentistRepo:     dentistRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
	}
}

// GetWeeklySlots derives the bookable (date, shift) grid for a dentist: each
// cell is available iff the dentist has an active approved schedule entry for
// it and no live appointment occupies it. The read is deliberately loose; the
// booking path re-validates the slot atomically.
func (u *availabilityUsecase) GetWeeklySlots(ctx context.Context, dentistID uuid.UUID, weekOffset int) (*dto.SlotGridResponse, error) {
	if weekOffset < 0 || weekOffset > maxWeekOffset {
		return nil, ErrInvalidWeekOffset
	}

	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), dentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist %s: %+v", dentistID, err)
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	weekStart := weekStartDate(time.Now().In(u.loc), weekOffset)
	weekEnd := weekStart.AddDate(0, 0, 6)

	schedules, err := u.scheduleRepo.FindByDentistBetween(u.db.WithContext(ctx), dentistID, weekStart, weekEnd)
	if err != nil {
		u.log.Warnf("Failed to load schedules for dentist %s: %+v", dentistID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindOccupiedSlots(u.db.WithContext(ctx), dentistID, weekStart, weekEnd)
	if err != nil {
		u.log.Warnf("Failed to load occupied slots for dentist %s: %+v", dentistID, err)
		return nil, err
	}

	return &dto.SlotGridResponse{
		DentistID:     dentistID,
		WeekStartDate: weekStart.Format("2006-01-02"),
		WeekOffset:    weekOffset,
		Days:          buildWeekGrid(weekStart, schedules, appointments),
	}, nil
}

// weekStartDate returns the Monday of now's week plus offset weeks, at
// midnight in now's location.
func weekStartDate(now time.Time, weekOffset int) time.Time {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday+7*weekOffset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// buildWeekGrid assembles the 7-day x 3-shift availability grid.
func buildWeekGrid(weekStart time.Time, schedules []entity.DentistSchedule, appointments []entity.Appointment) []dto.DaySlots {
	bookable := make(map[string]bool, len(schedules))
	for _, s := range schedules {
		if s.Bookable() {
			bookable[slotKey(s.WorkDate, s.Shift)] = true
		}
	}

	occupied := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		if a.OccupiesSlot() {
			occupied[slotKey(a.AppointmentDate, a.Shift)] = true
		}
	}

	days := make([]dto.DaySlots, 0, 7)
	for d := 0; d < 7; d++ {
		date := weekStart.AddDate(0, 0, d)
		cells := make([]dto.SlotCell, 0, len(entity.AllShifts()))
		for _, shift := range entity.AllShifts() {
			key := slotKey(date, shift)
			cells = append(cells, dto.SlotCell{
				Shift:     string(shift),
				StartTime: entity.ShiftStartTime(shift),
				Available: bookable[key] && !occupied[key],
			})
		}
		days = append(days, dto.DaySlots{
			Date:  date.Format("2006-01-02"),
			Cells: cells,
		})
	}
	return days
}

func slotKey(date time.Time, shift entity.Shift) string {
	return date.Format("2006-01-02") + "|" + string(shift)
}
