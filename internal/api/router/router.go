// Package router wires the HTTP surface: public discovery endpoints, the
// visitor booking API and the staff review API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wardpass/wardpass/internal/appointments"
	"github.com/wardpass/wardpass/internal/hospitals"
	httpmiddleware "github.com/wardpass/wardpass/internal/http/middleware"
	"github.com/wardpass/wardpass/internal/patients"
	"github.com/wardpass/wardpass/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	HospitalsHandler    *hospitals.Handler
	PatientsHandler     *patients.Handler
	AppointmentsHandler *appointments.Handler
	ReviewHandler       *appointments.ReviewHandler
	MetricsHandler      http.Handler

	CORSAllowedOrigins []string
	VisitorJWTSecret   string
	StaffJWTSecret     string

	// Zero disables rate limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/api/hospitals", func(r chi.Router) {
			r.Get("/", cfg.HospitalsHandler.List)
			r.Route("/{hospitalID}", func(r chi.Router) {
				r.Get("/", cfg.HospitalsHandler.Get)
				r.Get("/slots", cfg.AppointmentsHandler.Slots)
				r.Post("/patients/verify", cfg.PatientsHandler.Verify)
			})
		})

		// The confirmation view is reachable without a token; the UUID in
		// the path is the capability.
		public.Get("/api/appointments/{appointmentID}", cfg.AppointmentsHandler.Get)
	})

	// Visitor endpoints
	r.Group(func(visitor chi.Router) {
		visitor.Use(httpmiddleware.VisitorJWT(cfg.VisitorJWTSecret))
		visitor.Post("/api/appointments", cfg.AppointmentsHandler.Book)
		visitor.Get("/api/appointments", cfg.AppointmentsHandler.ListMine)
	})

	// Staff review endpoints
	r.Group(func(staff chi.Router) {
		staff.Use(httpmiddleware.StaffJWT(cfg.StaffJWTSecret))
		staff.Route("/staff/appointments", func(r chi.Router) {
			r.Get("/", cfg.ReviewHandler.List)
			r.Post("/{appointmentID}/approve", cfg.ReviewHandler.Approve)
			r.Post("/{appointmentID}/reject", cfg.ReviewHandler.Reject)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
