package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wardpass/wardpass/internal/identity"
	"github.com/wardpass/wardpass/pkg/logging"
)

// ReviewHandler provides the staff endpoints for approving or rejecting
// pending visit requests.
type ReviewHandler struct {
	service *Service
	logger  *logging.Logger
}

// NewReviewHandler creates a new staff review handler
func NewReviewHandler(service *Service, logger *logging.Logger) *ReviewHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// ListResponse is the response for the staff review queue
type ListResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
}

// List handles GET /staff/appointments?status=pending. Status defaults to
// pending, the review queue.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		http.Error(w, `{"error": "unknown status"}`, http.StatusBadRequest)
		return
	}

	appts, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		h.logger.Error("review queue listing failed", "error", err, "status", status)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Appointments: appts, Count: len(appts)})
}

// Approve handles POST /staff/appointments/{appointmentID}/approve.
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, StatusApproved)
}

// Reject handles POST /staff/appointments/{appointmentID}/reject.
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, StatusRejected)
}

func (h *ReviewHandler) decide(w http.ResponseWriter, r *http.Request, decision Status) {
	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		http.Error(w, `{"error": "invalid appointment id"}`, http.StatusBadRequest)
		return
	}

	appt, err := h.service.Decide(r.Context(), id, decision)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			http.Error(w, `{"error": "appointment not found"}`, http.StatusNotFound)
		case errors.Is(err, ErrInvalidTransition):
			http.Error(w, `{"error": "appointment has already been decided"}`, http.StatusConflict)
		case errors.Is(err, ErrInvalidDecision):
			http.Error(w, `{"error": "invalid decision"}`, http.StatusBadRequest)
		default:
			h.logger.Error("decision failed", "error", err, "appointment_id", id)
			http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	staffID, _ := identity.StaffFromContext(r.Context())
	h.logger.Info("staff decision applied",
		"appointment_id", appt.ID,
		"status", appt.Status,
		"staff_id", staffID,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appt)
}
