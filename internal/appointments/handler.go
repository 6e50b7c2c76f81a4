package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wardpass/wardpass/internal/hospitals"
	"github.com/wardpass/wardpass/internal/identity"
	"github.com/wardpass/wardpass/internal/patients"
	"github.com/wardpass/wardpass/pkg/logging"
)

// Handler handles HTTP requests for booking and viewing appointments.
type Handler struct {
	service   *Service
	patients  patients.Repository
	hospitals hospitals.Repository
	logger    *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(service *Service, patientRepo patients.Repository, hospitalRepo hospitals.Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:   service,
		patients:  patientRepo,
		hospitals: hospitalRepo,
		logger:    logger,
	}
}

// SlotsResponse is the response for listing available slots
type SlotsResponse struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Date       string    `json:"date"`
	Slots      []Slot    `json:"slots"`
	Count      int       `json:"count"`
}

// Slots handles GET /api/hospitals/{hospitalID}/slots?date=YYYY-MM-DD.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	hospitalID, err := uuid.Parse(chi.URLParam(r, "hospitalID"))
	if err != nil {
		http.Error(w, `{"error": "invalid hospital id"}`, http.StatusBadRequest)
		return
	}

	dateStr := r.URL.Query().Get("date")
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, `{"error": "date must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), hospitalID, day)
	if err != nil {
		switch {
		case errors.Is(err, hospitals.ErrHospitalNotFound):
			http.Error(w, `{"error": "hospital not found"}`, http.StatusNotFound)
		case errors.Is(err, ErrDateInPast):
			http.Error(w, `{"error": "date is in the past"}`, http.StatusBadRequest)
		default:
			h.logger.Error("slot listing failed", "error", err, "hospital_id", hospitalID)
			http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SlotsResponse{
		HospitalID: hospitalID,
		Date:       dateStr,
		Slots:      slots,
		Count:      len(slots),
	})
}

// Book handles POST /api/appointments requests.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	visitor, ok := identity.VisitorFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "authentication required"}`, http.StatusUnauthorized)
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	req.UserID = visitor.ID
	req.VisitorEmail = visitor.Email

	appt, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}

func (h *Handler) writeBookingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, hospitals.ErrHospitalNotFound):
		http.Error(w, `{"error": "hospital not found"}`, http.StatusNotFound)
	case errors.Is(err, patients.ErrPatientNotFound):
		http.Error(w, `{"error": "patient not found"}`, http.StatusNotFound)
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotUnavailable):
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusConflict)
	case errors.Is(err, ErrMissingRelationship),
		errors.Is(err, ErrVisitorCountOutOfRange),
		errors.Is(err, ErrInvalidVisitType),
		errors.Is(err, ErrDateInPast):
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		h.logger.Error("booking failed", "error", err, "path", r.URL.Path)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
	}
}

// AppointmentDetails joins an appointment with its patient and hospital for
// the public confirmation view.
type AppointmentDetails struct {
	*Appointment
	Patient  *patients.Patient   `json:"patient,omitempty"`
	Hospital *hospitals.Hospital `json:"hospital,omitempty"`
}

// Get handles GET /api/appointments/{appointmentID}. The confirmation view
// is public: the id is an unguessable UUID handed to the visitor at booking.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		http.Error(w, `{"error": "invalid appointment id"}`, http.StatusBadRequest)
		return
	}

	appt, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, `{"error": "appointment not found"}`, http.StatusNotFound)
			return
		}
		h.logger.Error("appointment fetch failed", "error", err, "appointment_id", id)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	details := AppointmentDetails{Appointment: appt}
	if patient, err := h.patients.GetByID(r.Context(), appt.PatientID); err == nil {
		details.Patient = patient
	}
	if hospital, err := h.hospitals.GetByID(r.Context(), appt.HospitalID); err == nil {
		details.Hospital = hospital
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

// ListMineResponse is the response for a visitor's own appointments
type ListMineResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
}

// ListMine handles GET /api/appointments for the authenticated visitor.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	visitor, ok := identity.VisitorFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "authentication required"}`, http.StatusUnauthorized)
		return
	}

	appts, err := h.service.ListForUser(r.Context(), visitor.ID)
	if err != nil {
		h.logger.Error("listing visitor appointments failed", "error", err, "user_id", visitor.ID)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListMineResponse{Appointments: appts, Count: len(appts)})
}
