package hospitals

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wardpass/wardpass/pkg/logging"
)

// Handler provides HTTP endpoints for the hospital directory.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new hospitals handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListHospitalsResponse is the response for listing hospitals
type ListHospitalsResponse struct {
	Hospitals []*Hospital `json:"hospitals"`
	Count     int         `json:"count"`
}

// List handles GET /api/hospitals requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list hospitals", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListHospitalsResponse{Hospitals: hospitals, Count: len(hospitals)})
}

// Get handles GET /api/hospitals/{hospitalID} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "hospitalID"))
	if err != nil {
		http.Error(w, `{"error": "invalid hospital id"}`, http.StatusBadRequest)
		return
	}

	hospital, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHospitalNotFound) {
			http.Error(w, `{"error": "hospital not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get hospital", "error", err, "hospital_id", id)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hospital)
}
