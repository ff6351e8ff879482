package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"denticare-server/internal/converter"
	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/domain/entity"
	"denticare-server/internal/domain/repository"
	"denticare-server/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotConflict             = errors.New("slot is already booked")
	ErrSlotNotBookable          = errors.New("slot is not open for booking")
	ErrPastAppointment          = errors.New("cannot book an appointment in the past")
	ErrInvalidAppointmentTime   = errors.New("appointment time is outside clinic shifts")
	ErrPatientNotFound          = errors.New("patient not found")
	ErrSourceAppointmentMissing = errors.New("source appointment not found")
	ErrRescheduleLinkMismatch   = errors.New("source appointment belongs to a different patient")
)

// existingPatientNotice accompanies a guest booking whose phone number
// already has a patient record; the caller is nudged to authenticate for
// self-service cancellation.
const existingPatientNotice = "This phone number is already registered. Sign in to manage or cancel this appointment online."

type BookingUsecase interface {
	ValidateGuestBooking(ctx context.Context, req *dto.ValidateBookingRequest) (*dto.BookingResponse, error)
	BookGuest(ctx context.Context, req *dto.GuestBookingRequest) (*dto.BookingResponse, error)
	BookFollowUp(ctx context.Context, actor Actor, req *dto.FollowUpBookingRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	loc             *time.Location
	patientRepo     repository.PatientRepository
	dentistRepo     repository.DentistProfileRepository
	scheduleRepo    repository.DentistScheduleRepository
	appointmentRepo repository.AppointmentRepository
	captchaService  *service.CaptchaService
	notifier        *service.NotificationService
	auditService    service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loc *time.Location,
	patientRepo repository.PatientRepository,
	dentistRepo repository.DentistProfileRepository,
	scheduleRepo repository.DentistScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	captchaService *service.CaptchaService,
	notifier *service.NotificationService,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		loc:             loc,
		patientRepo:     patientRepo,
		dentistRepo:     dentistRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		captchaService:  captchaService,
		notifier:        notifier,
		auditService:    auditService,
	}
}

// BookGuest books a slot for an unauthenticated caller.
//
// Flow:
// 1. Parse and shift-map the requested date/time (field validation happened
//    at the boundary)
// 2. Verify the captcha challenge; nothing is written on mismatch
// 3. Resolve or create the patient identity by phone number
// 4. Reserve the slot inside a single transaction: lock the schedule cell,
//    re-check occupancy, insert; a racing second booker gets ErrSlotConflict
func (u *bookingUsecase) BookGuest(ctx context.Context, req *dto.GuestBookingRequest) (*dto.BookingResponse, error) {
	date, shift, err := u.parseSlot(req.AppointmentDate, req.AppointmentTime, false)
	if err != nil {
		return nil, err
	}

	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), req.DentistID)
	if err != nil {
		u.log.Warnf("Failed to find dentist %s: %+v", req.DentistID, err)
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	if err := u.captchaService.Verify(ctx, req.ChallengeID, req.ChallengeInput); err != nil {
		return nil, err
	}

	appointment, existingPatient, err := u.reserveGuestSlot(ctx, req, date, shift)
	if isTransientTxFailure(err) {
		// One internal retry on deadlock/serialization failure; domain errors
		// like SlotConflict are never retried.
		u.log.Warnf("Retrying guest booking after transient tx failure: %+v", err)
		appointment, existingPatient, err = u.reserveGuestSlot(ctx, req, date, shift)
	}
	if err != nil {
		return nil, err
	}

	u.notifier.SendBookingConfirmation(req.Email, req.FullName, dentist.User.FullName, req.AppointmentDate, req.AppointmentTime)
	u.log.Infof("Guest booking created: id=%d, dentist=%s, date=%s, shift=%s", appointment.ID, req.DentistID, req.AppointmentDate, shift)

	response := &dto.BookingResponse{
		Appointment:     converter.AppointmentToResponse(appointment),
		ExistingPatient: existingPatient,
	}
	if existingPatient {
		response.Notice = existingPatientNotice
	}
	return response, nil
}

// ValidateGuestBooking runs the guest booking checks without writing
// anything: slot parsing, dentist existence, cell availability and phone
// dedup. The result can still change before the real booking lands.
func (u *bookingUsecase) ValidateGuestBooking(ctx context.Context, req *dto.ValidateBookingRequest) (*dto.BookingResponse, error) {
	date, shift, err := u.parseSlot(req.AppointmentDate, req.AppointmentTime, false)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	dentist, err := u.dentistRepo.FindByUserID(db, req.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	cells, err := u.scheduleRepo.FindByDentistBetween(db, req.DentistID, date, date)
	if err != nil {
		return nil, err
	}
	bookable := false
	for _, cell := range cells {
		if cell.Shift == shift && cell.Bookable() {
			bookable = true
			break
		}
	}
	if !bookable {
		return nil, ErrSlotNotBookable
	}

	count, err := u.appointmentRepo.CountActiveInSlot(db, req.DentistID, date, shift, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotConflict
	}

	patient, err := u.patientRepo.FindByPhone(db, req.Phone)
	if err != nil {
		return nil, err
	}

	response := &dto.BookingResponse{ExistingPatient: patient != nil}
	if patient != nil {
		response.Notice = existingPatientNotice
	}
	return response, nil
}

func (u *bookingUsecase) reserveGuestSlot(ctx context.Context, req *dto.GuestBookingRequest, date time.Time, shift entity.Shift) (*entity.Appointment, bool, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Identity resolution by phone, inside the transaction so a concurrent
	// guest with the same phone cannot create a duplicate patient.
	patient, err := u.patientRepo.FindByPhone(tx, req.Phone)
	if err != nil {
		u.log.Warnf("Failed to find patient by phone: %+v", err)
		return nil, false, err
	}

	isNewPatient := patient == nil
	if isNewPatient {
		patient = &entity.Patient{
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
		}
		if err := u.patientRepo.Create(tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, false, err
		}
		if err := u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient); err != nil {
			return nil, false, err
		}
	}

	appointmentType := entity.AppointmentTypeFirstTime
	if !isNewPatient {
		appointmentType = entity.AppointmentTypeConsultation
	}

	appointment, err := u.reserveSlot(ctx, tx, &slotReservation{
		patientID:       patient.ID,
		dentistID:       req.DentistID,
		date:            date,
		timeOfDay:       req.AppointmentTime,
		shift:           shift,
		appointmentType: appointmentType,
		isNewPatient:    isNewPatient,
		content:         req.Content,
		auditAction:     entity.AuditActionAppointmentBook,
	})
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, false, err
	}

	appointment.Patient = *patient
	return appointment, !isNewPatient, nil
}

// BookFollowUp books on behalf of an existing patient (staff channel). The
// afternoon shift opens at 13:00 for this channel, the slot guarantee is the
// same as the guest channel, and the new appointment may reference the prior
// visit it was derived from.
func (u *bookingUsecase) BookFollowUp(ctx context.Context, actor Actor, req *dto.FollowUpBookingRequest) (*dto.AppointmentResponse, error) {
	date, shift, err := u.parseSlot(req.AppointmentDate, req.AppointmentTime, true)
	if err != nil {
		return nil, err
	}

	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), req.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.SourceAppointmentID != nil {
		source, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), *req.SourceAppointmentID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, ErrSourceAppointmentMissing
		}
		// A reschedule link must stay within one patient's history.
		if source.PatientID != req.PatientID {
			return nil, ErrRescheduleLinkMismatch
		}
	}

	appointment, err := u.reserveFollowUpSlot(ctx, actor, req, date, shift)
	if isTransientTxFailure(err) {
		u.log.Warnf("Retrying follow-up booking after transient tx failure: %+v", err)
		appointment, err = u.reserveFollowUpSlot(ctx, actor, req, date, shift)
	}
	if err != nil {
		return nil, err
	}

	u.notifier.SendBookingConfirmation(patient.Email, patient.FullName, dentist.User.FullName, req.AppointmentDate, req.AppointmentTime)
	u.log.Infof("Follow-up booking created: id=%d, patient=%s, dentist=%s", appointment.ID, req.PatientID, req.DentistID)

	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) reserveFollowUpSlot(ctx context.Context, actor Actor, req *dto.FollowUpBookingRequest, date time.Time, shift entity.Shift) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.reserveSlot(ctx, tx, &slotReservation{
		patientID:       req.PatientID,
		dentistID:       req.DentistID,
		date:            date,
		timeOfDay:       req.AppointmentTime,
		shift:           shift,
		appointmentType: entity.AppointmentTypeFollowUp,
		content:         req.Content,
		rescheduledFrom: req.SourceAppointmentID,
		createdBy:       &actor.UserID,
		auditAction:     entity.AuditActionAppointmentFollowUp,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	return appointment, nil
}

type slotReservation struct {
	patientID       uuid.UUID
	dentistID       uuid.UUID
	date            time.Time
	timeOfDay       string
	shift           entity.Shift
	appointmentType string
	isNewPatient    bool
	content         string
	rescheduledFrom *int64
	createdBy       *uuid.UUID
	auditAction     string
}

// reserveSlot is the atomic "check availability, then insert" unit shared by
// every booking path. The schedule cell row lock serializes racing bookers;
// the partial unique index on the active-slot key backstops the check.
func (u *bookingUsecase) reserveSlot(ctx context.Context, tx *gorm.DB, res *slotReservation) (*entity.Appointment, error) {
	cell, err := u.scheduleRepo.FindCellForUpdate(tx, res.dentistID, res.date, res.shift)
	if err != nil {
		u.log.Warnf("Failed to lock schedule cell: %+v", err)
		return nil, err
	}
	if cell == nil || !cell.Bookable() {
		return nil, ErrSlotNotBookable
	}

	count, err := u.appointmentRepo.CountActiveInSlot(tx, res.dentistID, res.date, res.shift, 0)
	if err != nil {
		u.log.Warnf("Failed to count active slot occupancy: %+v", err)
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotConflict
	}

	appointment := &entity.Appointment{
		PatientID:                    res.patientID,
		DentistID:                    res.dentistID,
		AppointmentDate:              res.date,
		AppointmentTime:              res.timeOfDay,
		Shift:                        res.shift,
		Status:                       entity.AppointmentStatusConfirmed,
		AppointmentType:              res.appointmentType,
		IsNewPatient:                 res.isNewPatient,
		RescheduledFromAppointmentID: res.rescheduledFrom,
		Content:                      res.content,
	}
	appointment.CreatedBy = res.createdBy

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isUniqueViolation(err, "active_slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, res.createdBy, res.auditAction, "appointment", strconv.FormatInt(appointment.ID, 10), appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// parseSlot validates the requested date/time against the shift windows and
// the booking horizon. staffChannel widens the afternoon window to 13:00.
func (u *bookingUsecase) parseSlot(dateStr, timeStr string, staffChannel bool) (time.Time, entity.Shift, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, u.loc)
	if err != nil {
		return time.Time{}, "", ErrInvalidAppointmentTime
	}

	shift, ok := entity.ShiftForTime(timeStr)
	if staffChannel {
		shift, ok = entity.ShiftForStaffTime(timeStr)
	}
	if !ok {
		return time.Time{}, "", ErrInvalidAppointmentTime
	}

	now := time.Now().In(u.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.loc)
	if date.Before(today) {
		return time.Time{}, "", ErrPastAppointment
	}

	return date, shift, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isTransientTxFailure reports whether the transaction failed for a reason
// that is safe to retry internally, exactly once: deadlock or serialization
// failure. Domain errors are never retried.
func isTransientTxFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 = serialization_failure, 40P01 = deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
