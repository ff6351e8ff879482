package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"
	"denticare-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), actor, id)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// List returns appointments matching optional filters. Staff only.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	query := &dto.AppointmentListQuery{
		StartAt: r.URL.Query().Get("start_at"),
		EndAt:   r.URL.Query().Get("end_at"),
		Status:  r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("dentist_id"); raw != "" {
		dentistID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
			return
		}
		query.DentistID = dentistID
	}

	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), actor, query)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListMine returns the authenticated patient's appointment history.
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListMine(r.Context(), actor)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// MarkAttended records that the patient showed up. Staff only.
func (h *AppointmentHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.MarkAttended, "Appointment marked as attended")
}

// MarkAbsented records a no-show. Staff only.
func (h *AppointmentHandler) MarkAbsented(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.MarkAbsented, "Appointment marked as absented")
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actor usecase.Actor, id int64) error, message string) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := fn(r.Context(), actor, id); err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, nil)
}

// Cancel moves a confirmed appointment to canceled
// @Summary Cancel an appointment
// @Description Patients may cancel their own appointments up to 2 hours before the start; staff may cancel any confirmed appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.CancelAppointmentRequest false "Cancel Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), actor, id, req.Reason); err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// Reschedule relocates a confirmed appointment. Staff only.
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := appointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), actor, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient record not found")
	case usecase.ErrDentistNotFound:
		response.NotFound(w, "Dentist not found")
	case usecase.ErrNotAppointmentOwner:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrUnauthorizedTransition:
		response.Forbidden(w, "You are not allowed to perform this transition")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "INVALID_TRANSITION", "Appointment state does not allow this transition")
	case usecase.ErrCancellationWindowExceeded:
		response.UnprocessableEntity(w, "CANCELLATION_WINDOW_EXCEEDED", "Cancellation window has closed")
	case usecase.ErrInvalidAppointmentTime:
		response.ErrorWithCode(w, http.StatusBadRequest, "INVALID_APPOINTMENT_TIME", "Appointment time is outside clinic shifts")
	case usecase.ErrSlotNotBookable:
		response.UnprocessableEntity(w, "SLOT_NOT_BOOKABLE", "Slot is not open for booking")
	case usecase.ErrSlotConflict:
		response.Conflict(w, "SLOT_CONFLICT", "Slot is already booked")
	default:
		response.InternalServerError(w, "Failed to process appointment")
	}
}

func appointmentID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
