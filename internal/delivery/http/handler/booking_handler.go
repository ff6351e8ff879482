package handler

import (
	"encoding/json"
	"net/http"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/service"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"
	"denticare-server/pkg/validator"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	captchaService *service.CaptchaService
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, captchaService *service.CaptchaService, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		captchaService: captchaService,
		validator:      validator,
	}
}

// GetCaptcha issues a challenge for the guest booking flow
// @Summary Issue a booking captcha challenge
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Response
// @Router /captcha [get]
func (h *BookingHandler) GetCaptcha(w http.ResponseWriter, r *http.Request) {
	challengeID, challenge, err := h.captchaService.Issue(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to issue captcha challenge")
		return
	}

	response.Success(w, http.StatusOK, "Captcha issued", &dto.CaptchaResponse{
		ChallengeID: challengeID,
		Challenge:   challenge,
	})
}

// ValidateBooking pre-checks guest booking fields without reserving anything.
func (h *BookingHandler) ValidateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingUsecase.ValidateGuestBooking(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Booking request is valid", result)
}

// CreateGuestBooking books a slot for an unauthenticated caller
// @Summary Book an appointment as a guest
// @Description Requires a solved captcha challenge; a patient record is created or matched by phone
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.GuestBookingRequest true "Guest Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateGuestBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.GuestBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.BookGuest(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", booking)
}

// CreateFollowUpBooking books on behalf of an existing patient. Staff only.
func (h *BookingHandler) CreateFollowUpBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.FollowUpBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.BookFollowUp(r.Context(), actor, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Follow-up appointment booked successfully", appointment)
}

func (h *BookingHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch err {
	case service.ErrInvalidCaptcha:
		response.ErrorWithCode(w, http.StatusBadRequest, "INVALID_CAPTCHA", "Captcha challenge failed")
	case usecase.ErrDentistNotFound:
		response.NotFound(w, "Dentist not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrSourceAppointmentMissing:
		response.NotFound(w, "Source appointment not found")
	case usecase.ErrRescheduleLinkMismatch:
		response.UnprocessableEntity(w, "RESCHEDULE_LINK_MISMATCH", "Source appointment belongs to a different patient")
	case usecase.ErrInvalidAppointmentTime:
		response.ErrorWithCode(w, http.StatusBadRequest, "INVALID_APPOINTMENT_TIME", "Appointment time is outside clinic shifts")
	case usecase.ErrPastAppointment:
		response.ErrorWithCode(w, http.StatusBadRequest, "PAST_APPOINTMENT", "Cannot book an appointment in the past")
	case usecase.ErrSlotNotBookable:
		response.UnprocessableEntity(w, "SLOT_NOT_BOOKABLE", "Slot is not open for booking")
	case usecase.ErrSlotConflict:
		response.Conflict(w, "SLOT_CONFLICT", "Slot is already booked")
	default:
		response.InternalServerError(w, "Failed to process booking")
	}
}
