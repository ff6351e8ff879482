package handler

import (
	"net/http"
	"strconv"

	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetWeeklySlots returns the 7x3 availability grid for a dentist
// @Summary Get a dentist's weekly availability grid
// @Description week_offset query param: 0 = current week, 1 = next week
// @Tags Availability
// @Produce json
// @Param id path string true "Dentist ID"
// @Param week_offset query int false "Week offset"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dentists/{id}/slots [get]
func (h *AvailabilityHandler) GetWeeklySlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dentistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
		return
	}

	weekOffset := 0
	if raw := r.URL.Query().Get("week_offset"); raw != "" {
		weekOffset, err = strconv.Atoi(raw)
		if err != nil {
			response.ErrorWithCode(w, http.StatusBadRequest, "INVALID_WEEK_OFFSET", "Week offset must be an integer")
			return
		}
	}

	grid, err := h.availabilityUsecase.GetWeeklySlots(r.Context(), dentistID, weekOffset)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWeekOffset:
			response.ErrorWithCode(w, http.StatusBadRequest, "INVALID_WEEK_OFFSET", "Week offset is out of range")
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", grid)
}
