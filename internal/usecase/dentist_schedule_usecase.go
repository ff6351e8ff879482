package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"denticare-server/internal/converter"
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
	"denticare-server/internal/domain/repository"
	"denticare-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleCellExists    = errors.New("schedule already declared for this dentist, date and shift")
	ErrInvalidScheduleDate   = errors.New("invalid schedule date format, use YYYY-MM-DD")
	ErrScheduleHasBookings   = errors.New("schedule cell has active appointments")
	ErrInvalidScheduleStatus = errors.New("invalid schedule status")
)

type DentistScheduleUsecase interface {
	CreateSchedule(ctx context.Context, actor Actor, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error)
	GetSchedulesByDentist(ctx context.Context, dentistID uuid.UUID, from, to string) (*dto.ScheduleListResponse, error)
	GetAllSchedules(ctx context.Context) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, actor Actor, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, actor Actor, scheduleID int) error
}

type dentistScheduleUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	scheduleRepo    repository.DentistScheduleRepository
	dentistRepo     repository.DentistProfileRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewDentistScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	scheduleRepo repository.DentistScheduleRepository,
	dentistRepo repository.DentistProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) DentistScheduleUsecase {
	return &dentistScheduleUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		scheduleRepo:    scheduleRepo,
		dentistRepo:     dentistRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// CreateSchedule declares a (dentist, date, shift) cell. The cell starts as
// pending and must be approved before it shows up in the availability grid.
func (u *dentistScheduleUsecase) CreateSchedule(ctx context.Context, actor Actor, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), req.DentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist: %+v", err)
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	workDate, err := time.ParseInLocation("2006-01-02", req.WorkDate, u.loc)
	if err != nil {
		return nil, ErrInvalidScheduleDate
	}
	if !entity.IsValidShift(entity.Shift(req.Shift)) {
		return nil, ErrInvalidScheduleStatus
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	schedule := &entity.DentistSchedule{
		DentistID:     req.DentistID,
		WorkDate:      workDate,
		Shift:         entity.Shift(req.Shift),
		WeekStartDate: weekStartDate(workDate, 0),
		IsActive:      &isActive,
		Status:        entity.ScheduleStatusPending,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		if isUniqueViolation(err, "dentist_schedules_cell") {
			return nil, ErrScheduleCellExists
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionScheduleCreate, "dentist_schedule", strconv.Itoa(schedule.ID), schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *dentistScheduleUsecase) GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *dentistScheduleUsecase) GetSchedulesByDentist(ctx context.Context, dentistID uuid.UUID, from, to string) (*dto.ScheduleListResponse, error) {
	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), dentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	// Default to the current week when no range is given.
	fromDate := weekStartDate(time.Now().In(u.loc), 0)
	toDate := fromDate.AddDate(0, 0, 6)
	if from != "" {
		if fromDate, err = time.ParseInLocation("2006-01-02", from, u.loc); err != nil {
			return nil, ErrInvalidScheduleDate
		}
	}
	if to != "" {
		if toDate, err = time.ParseInLocation("2006-01-02", to, u.loc); err != nil {
			return nil, ErrInvalidScheduleDate
		}
	}

	schedules, err := u.scheduleRepo.FindByDentistBetween(u.db.WithContext(ctx), dentistID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *dentistScheduleUsecase) GetAllSchedules(ctx context.Context) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

// UpdateSchedule toggles activation or moves the approval status. Changing
// status to approved is how an admin publishes a pending cell.
func (u *dentistScheduleUsecase) UpdateSchedule(ctx context.Context, actor Actor, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	before := *schedule

	if req.IsActive != nil {
		schedule.IsActive = req.IsActive
	}
	if req.Status != "" {
		status := entity.ScheduleStatus(req.Status)
		if status != entity.ScheduleStatusPending && status != entity.ScheduleStatusApproved {
			return nil, ErrInvalidScheduleStatus
		}
		schedule.Status = status
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionScheduleUpdate, "dentist_schedule", strconv.Itoa(schedule.ID), before, schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

// DeleteSchedule removes a cell. A cell carrying active appointments cannot
// be deleted; the appointments must be rescheduled or canceled first.
func (u *dentistScheduleUsecase) DeleteSchedule(ctx context.Context, actor Actor, scheduleID int) error {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.appointmentRepo.CountActiveInSlot(tx, schedule.DentistID, schedule.WorkDate, schedule.Shift, 0)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrScheduleHasBookings
	}

	affected, err := u.scheduleRepo.Delete(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actor.UserID, entity.AuditActionScheduleDelete, "dentist_schedule", strconv.Itoa(scheduleID), schedule); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
