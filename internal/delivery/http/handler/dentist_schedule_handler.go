package handler

import (
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

type DentistScheduleHandler struct {
	scheduleUsecase usecase.DentistScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDentistScheduleHandler(scheduleUsecase usecase.DentistScheduleUsecase, validator *validator.CustomValidator) *DentistScheduleHandler {
	return &DentistScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// CreateSchedule declares a (dentist, date, shift) cell. Staff only.
func (h *DentistScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.CreateSchedule(r.Context(), actor, &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

func (h *DentistScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *DentistScheduleHandler) GetSchedulesByDentist(w http.ResponseWriter, r *http.Request) {
	dentistID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
		return
	}

	schedules, err := h.scheduleUsecase.GetSchedulesByDentist(r.Context(), dentistID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func (h *DentistScheduleHandler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleUsecase.GetAllSchedules(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// UpdateSchedule toggles activation or approval. Admin only.
func (h *DentistScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSchedule(r.Context(), actor, scheduleID, &req)
	if err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *DentistScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteSchedule(r.Context(), actor, scheduleID); err != nil {
		h.writeScheduleError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}

func (h *DentistScheduleHandler) writeScheduleError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrScheduleNotFound:
		response.NotFound(w, "Schedule not found")
	case usecase.ErrDentistNotFound:
		response.NotFound(w, "Dentist not found")
	case usecase.ErrInvalidScheduleDate:
		response.Error(w, http.StatusBadRequest, "Invalid schedule date, use YYYY-MM-DD", nil)
	case usecase.ErrInvalidScheduleStatus:
		response.Error(w, http.StatusBadRequest, "Invalid schedule status or shift", nil)
	case usecase.ErrScheduleCellExists:
		response.Conflict(w, "SCHEDULE_CELL_EXISTS", "Schedule already declared for this dentist, date and shift")
	case usecase.ErrScheduleHasBookings:
		response.Conflict(w, "SCHEDULE_HAS_BOOKINGS", "Schedule cell has active appointments")
	default:
		response.InternalServerError(w, "Failed to process schedule")
	}
}
