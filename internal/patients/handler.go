package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wardpass/wardpass/pkg/logging"
)

// Handler provides the patient verification endpoint used before booking.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new patients handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// VerifyRequest is the request body for verifying a patient identifier
type VerifyRequest struct {
	PatientID string `json:"patient_id"`
}

// Verify handles POST /api/hospitals/{hospitalID}/patients/verify requests.
// It resolves the patient-facing identifier so the visitor can confirm the
// name/room/ward before booking.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := uuid.Parse(chi.URLParam(r, "hospitalID"))
	if err != nil {
		http.Error(w, `{"error": "invalid hospital id"}`, http.StatusBadRequest)
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	req.PatientID = strings.TrimSpace(req.PatientID)
	if req.PatientID == "" {
		http.Error(w, `{"error": "patient_id required"}`, http.StatusBadRequest)
		return
	}

	patient, err := h.repo.Lookup(r.Context(), hospitalID, req.PatientID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			http.Error(w, `{"error": "patient not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("patient lookup failed", "error", err, "hospital_id", hospitalID)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}
