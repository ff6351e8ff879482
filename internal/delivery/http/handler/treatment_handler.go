package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"
	"denticare-server/pkg/validator"

	"github.com/gorilla/mux"
)

type TreatmentHandler struct {
	treatmentUsecase usecase.TreatmentUsecase
	validator        *validator.CustomValidator
}

func NewTreatmentHandler(treatmentUsecase usecase.TreatmentUsecase, validator *validator.CustomValidator) *TreatmentHandler {
	return &TreatmentHandler{
		treatmentUsecase: treatmentUsecase,
		validator:        validator,
	}
}

// GetAllTreatments lists the clinic's service and price catalog. Public.
func (h *TreatmentHandler) GetAllTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.treatmentUsecase.GetAllTreatments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list treatments")
		return
	}

	response.Success(w, http.StatusOK, "Treatments retrieved successfully", treatments)
}

func (h *TreatmentHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment ID", nil)
		return
	}

	treatment, err := h.treatmentUsecase.GetTreatment(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentNotFound:
			response.NotFound(w, "Treatment not found")
		default:
			response.InternalServerError(w, "Failed to get treatment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment retrieved successfully", treatment)
}

// CreateTreatment adds a catalog entry. Admin only.
func (h *TreatmentHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	treatment, err := h.treatmentUsecase.CreateTreatment(r.Context(), actor, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment created successfully", treatment)
}

func (h *TreatmentHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment ID", nil)
		return
	}

	var req dto.UpdateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	treatment, err := h.treatmentUsecase.UpdateTreatment(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrTreatmentNotFound:
			response.NotFound(w, "Treatment not found")
		default:
			response.InternalServerError(w, "Failed to update treatment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment updated successfully", treatment)
}

func (h *TreatmentHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment ID", nil)
		return
	}

	if err := h.treatmentUsecase.DeleteTreatment(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrTreatmentNotFound:
			response.NotFound(w, "Treatment not found")
		default:
			response.InternalServerError(w, "Failed to delete treatment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment deleted successfully", nil)
}
