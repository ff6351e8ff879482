package handler

import (
	"net/http"

	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase}
}

// GetAllPatients lists patient records. Staff only.
func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	// Front-desk phone lookup when the query param is present.
	if phone := r.URL.Query().Get("phone"); phone != "" {
		patient, err := h.patientUsecase.SearchByPhone(r.Context(), phone)
		if err != nil {
			switch err {
			case usecase.ErrPatientNotFound:
				response.NotFound(w, "Patient not found")
			default:
				response.InternalServerError(w, "Failed to search patient")
			}
			return
		}
		response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
		return
	}

	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}
