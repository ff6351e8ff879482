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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrInvalidTransition          = errors.New("appointment state does not allow this transition")
	ErrUnauthorizedTransition     = errors.New("caller is not allowed to perform this transition")
	ErrNotAppointmentOwner        = errors.New("appointment does not belong to you")
	ErrCancellationWindowExceeded = errors.New("cancellation window has closed")
)

type AppointmentUsecase interface {
	Get(ctx context.Context, actor Actor, id int64) (*dto.AppointmentResponse, error)
	List(ctx context.Context, actor Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	ListMine(ctx context.Context, actor Actor) (*dto.AppointmentListResponse, error)
	MarkAttended(ctx context.Context, actor Actor, id int64) error
	MarkAbsented(ctx context.Context, actor Actor, id int64) error
	Cancel(ctx context.Context, actor Actor, id int64, reason string) error
	Reschedule(ctx context.Context, actor Actor, id int64, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	dentistRepo     repository.DentistProfileRepository
	scheduleRepo    repository.DentistScheduleRepository
	notifier        *service.NotificationService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	dentistRepo repository.DentistProfileRepository,
	scheduleRepo repository.DentistScheduleRepository,
	notifier *service.NotificationService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		dentistRepo:     dentistRepo,
		scheduleRepo:    scheduleRepo,
		notifier:        notifier,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Get(ctx context.Context, actor Actor, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !actor.IsStaff() {
		if err := u.verifyOwnership(ctx, actor, appointment); err != nil {
			return nil, err
		}
	}

	return converter.AppointmentToResponseWithRemaining(appointment, time.Now().In(u.loc), u.loc), nil
}

func (u *appointmentUsecase) List(ctx context.Context, actor Actor, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{
		DentistID: query.DentistID,
		StartAt:   query.StartAt,
		EndAt:     query.EndAt,
		Status:    entity.AppointmentStatus(query.Status),
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListMine returns the authenticated patient's own appointment history.
func (u *appointmentUsecase) ListMine(ctx context.Context, actor Actor) (*dto.AppointmentListResponse, error) {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	now := time.Now().In(u.loc)
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = *converter.AppointmentToResponseWithRemaining(&a, now, u.loc)
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

// MarkAttended records that the patient showed up. Staff only.
func (u *appointmentUsecase) MarkAttended(ctx context.Context, actor Actor, id int64) error {
	return u.transition(ctx, actor, id, entity.AppointmentStatusAttended, entity.AuditActionAppointmentAttend, "")
}

// MarkAbsented records a no-show. Staff only.
func (u *appointmentUsecase) MarkAbsented(ctx context.Context, actor Actor, id int64) error {
	return u.transition(ctx, actor, id, entity.AppointmentStatusAbsented, entity.AuditActionAppointmentAbsent, "")
}

// transition applies a staff-only lifecycle move out of confirmed. The
// conditional update rejects stale transitions instead of overwriting a
// terminal state.
func (u *appointmentUsecase) transition(ctx context.Context, actor Actor, id int64, target entity.AppointmentStatus, auditAction, reason string) error {
	if !actor.IsStaff() {
		return ErrUnauthorizedTransition
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !appointment.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusFromConfirmed(tx, id, target, reason, &actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to transition appointment %d to %s: %+v", id, target, err)
		return err
	}
	if affected == 0 {
		// Lost the race to another transition.
		return ErrInvalidTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, auditAction, "appointment", strconv.FormatInt(id, 10), string(appointment.Status), string(target)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Appointment %d transitioned to %s by user %s", id, target, actor.UserID)
	return nil
}

// Cancel moves a confirmed appointment to canceled. Patients may cancel
// their own appointments up to the cancellation deadline; staff may cancel
// any confirmed appointment without a time restriction.
func (u *appointmentUsecase) Cancel(ctx context.Context, actor Actor, id int64, reason string) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	switch {
	case actor.IsStaff():
		if !appointment.CancelableByStaff() {
			return ErrInvalidTransition
		}
	case actor.IsPatient():
		if err := u.verifyOwnership(ctx, actor, appointment); err != nil {
			return err
		}
		if !appointment.IsConfirmed() {
			return ErrInvalidTransition
		}
		if !appointment.CancelableByPatient(time.Now().In(u.loc), u.loc) {
			return ErrCancellationWindowExceeded
		}
	default:
		return ErrUnauthorizedTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusFromConfirmed(tx, id, entity.AppointmentStatusCanceled, reason, &actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentCancel, "appointment", strconv.FormatInt(id, 10), string(appointment.Status), string(entity.AppointmentStatusCanceled)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.notifier.SendCancellationNotice(appointment.Patient.Email, appointment.Patient.FullName, appointment.AppointmentDate.Format("2006-01-02"), appointment.AppointmentTime)
	u.log.Infof("Appointment %d canceled by user %s", id, actor.UserID)
	return nil
}

// Reschedule relocates a confirmed appointment to a new dentist/date/time in
// place: the prior slot is freed implicitly, the status stays confirmed, and
// the new slot passes through the same conflict check as a fresh booking.
// Staff only.
func (u *appointmentUsecase) Reschedule(ctx context.Context, actor Actor, id int64, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !actor.IsStaff() {
		return nil, ErrUnauthorizedTransition
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsConfirmed() {
		return nil, ErrInvalidTransition
	}

	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), req.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	date, err := time.ParseInLocation("2006-01-02", req.AppointmentDate, u.loc)
	if err != nil {
		return nil, ErrInvalidAppointmentTime
	}
	shift, ok := entity.ShiftForStaffTime(req.AppointmentTime)
	if !ok {
		return nil, ErrInvalidAppointmentTime
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	cell, err := u.scheduleRepo.FindCellForUpdate(tx, req.DentistID, date, shift)
	if err != nil {
		return nil, err
	}
	if cell == nil || !cell.Bookable() {
		return nil, ErrSlotNotBookable
	}

	// Exclude the appointment itself so relocating within its current slot
	// does not conflict with its own row.
	count, err := u.appointmentRepo.CountActiveInSlot(tx, req.DentistID, date, shift, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotConflict
	}

	affected, err := u.appointmentRepo.RelocateConfirmed(tx, id, req.DentistID, date, req.AppointmentTime, shift, req.Content, &actor.UserID)
	if err != nil {
		if isUniqueViolation(err, "active_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to relocate appointment %d: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	oldSlot := map[string]interface{}{
		"dentist_id":       appointment.DentistID,
		"appointment_date": appointment.AppointmentDate.Format("2006-01-02"),
		"appointment_time": appointment.AppointmentTime,
	}
	newSlot := map[string]interface{}{
		"dentist_id":       req.DentistID,
		"appointment_date": req.AppointmentDate,
		"appointment_time": req.AppointmentTime,
	}
	if err := u.auditService.LogUpdate(ctx, tx, &actor.UserID, entity.AuditActionAppointmentReschedule, "appointment", strconv.FormatInt(id, 10), oldSlot, newSlot); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	updated, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload appointment %d after reschedule: %+v", id, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment %d rescheduled to dentist=%s date=%s by user %s", id, req.DentistID, req.AppointmentDate, actor.UserID)
	return converter.AppointmentToResponse(updated), nil
}

func (u *appointmentUsecase) verifyOwnership(ctx context.Context, actor Actor, appointment *entity.Appointment) error {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actor.UserID)
	if err != nil {
		return err
	}
	if patient == nil || patient.ID != appointment.PatientID {
		return ErrNotAppointmentOwner
	}
	return nil
}
