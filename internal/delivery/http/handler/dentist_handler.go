package handler

import (
	"encoding/json"
	"net/http"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"
	"denticare-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DentistHandler struct {
	dentistUsecase usecase.DentistProfileUsecase
	validator      *validator.CustomValidator
}

func NewDentistHandler(dentistUsecase usecase.DentistProfileUsecase, validator *validator.CustomValidator) *DentistHandler {
	return &DentistHandler{
		dentistUsecase: dentistUsecase,
		validator:      validator,
	}
}

// GetAllDentists lists active dentists for the public booking flow.
func (h *DentistHandler) GetAllDentists(w http.ResponseWriter, r *http.Request) {
	dentists, err := h.dentistUsecase.GetAllDentists(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list dentists")
		return
	}

	response.Success(w, http.StatusOK, "Dentists retrieved successfully", dentists)
}

func (h *DentistHandler) GetDentist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
		return
	}

	dentist, err := h.dentistUsecase.GetDentist(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		default:
			response.InternalServerError(w, "Failed to get dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist retrieved successfully", dentist)
}

// UpdateDentist edits a dentist profile. Admin only.
func (h *DentistHandler) UpdateDentist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dentist ID", nil)
		return
	}

	var req dto.UpdateDentistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dentist, err := h.dentistUsecase.UpdateDentist(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to update dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist updated successfully", dentist)
}
