package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wardpass/wardpass/internal/hospitals"
	"github.com/wardpass/wardpass/internal/observability/metrics"
	"github.com/wardpass/wardpass/internal/patients"
	"github.com/wardpass/wardpass/pkg/logging"
)

var appointmentsTracer = otel.Tracer("wardpass.internal.appointments")

// HospitalDirectory resolves hospitals; the hospitals package provides the
// real implementation (optionally cache-backed).
type HospitalDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*hospitals.Hospital, error)
}

// Notifier receives booking lifecycle events. Notifications are best-effort
// and never fail the underlying operation.
type Notifier interface {
	BookingReceived(ctx context.Context, appt *Appointment)
	DecisionRecorded(ctx context.Context, appt *Appointment)
}

// Service orchestrates the booking transaction and the staff review flow.
type Service struct {
	repo      Repository
	hospitals HospitalDirectory
	validator *Validator
	calendar  *Calendar
	notifier  Notifier
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger
}

// NewService constructs the booking service.
func NewService(repo Repository, hospitalDir HospitalDirectory, validator *Validator, calendar *Calendar, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if hospitalDir == nil {
		panic("appointments: hospital directory required")
	}
	if validator == nil {
		panic("appointments: validator required")
	}
	if calendar == nil {
		panic("appointments: calendar required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:      repo,
		hospitals: hospitalDir,
		validator: validator,
		calendar:  calendar,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// Book runs the whole booking transaction: resolve the hospital, validate
// the request against a fresh slot derivation, then insert. The insert is
// the only mutating step; any earlier failure leaves nothing behind, and a
// lost slot race surfaces as ErrSlotTaken without a retry (resubmission is
// the caller's explicit choice).
func (s *Service) Book(ctx context.Context, req *BookingRequest) (*Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.String("wardpass.hospital_id", req.HospitalID.String()),
		attribute.String("wardpass.scheduled_for", req.ScheduledFor.Format(time.RFC3339)),
	)

	hospital, err := s.hospitals.GetByID(ctx, req.HospitalID)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking(bookingOutcome(err))
		return nil, err
	}

	draft, err := s.validator.Validate(ctx, hospital, req)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking(bookingOutcome(err))
		return nil, err
	}

	appt, err := s.repo.Insert(ctx, draft)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking(bookingOutcome(err))
		if errors.Is(err, ErrSlotTaken) {
			s.logger.Info("booking lost the slot race",
				"hospital_id", req.HospitalID,
				"scheduled_for", req.ScheduledFor,
			)
		}
		return nil, err
	}

	s.metrics.ObserveBooking("accepted")
	s.logger.Info("visit booked",
		"appointment_id", appt.ID,
		"hospital_id", appt.HospitalID,
		"scheduled_for", appt.ScheduledFor,
		"visit_type", appt.VisitType,
	)
	if s.notifier != nil {
		s.notifier.BookingReceived(ctx, appt)
	}
	return appt, nil
}

// AvailableSlots resolves the hospital and derives its free slots for day.
func (s *Service) AvailableSlots(ctx context.Context, hospitalID uuid.UUID, day time.Time) ([]Slot, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.available_slots")
	defer span.End()
	span.SetAttributes(attribute.String("wardpass.hospital_id", hospitalID.String()))

	hospital, err := s.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	slots, err := s.calendar.AvailableSlots(ctx, hospital, day)
	s.metrics.ObserveSlotQuery(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return slots, nil
}

// Get returns a single appointment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForUser returns the visitor's own appointments.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByStatus returns appointments awaiting (or past) review.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Appointment, error) {
	if !status.Valid() {
		return nil, ErrInvalidDecision
	}
	return s.repo.ListByStatus(ctx, status)
}

// Decide records a staff decision on a pending appointment. Approved and
// rejected are terminal; repeating a decision fails with
// ErrInvalidTransition and changes nothing.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, decision Status) (*Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.decide")
	defer span.End()
	span.SetAttributes(
		attribute.String("wardpass.appointment_id", id.String()),
		attribute.String("wardpass.decision", string(decision)),
	)

	if decision != StatusApproved && decision != StatusRejected {
		return nil, ErrInvalidDecision
	}

	appt, err := s.repo.UpdateStatus(ctx, id, decision)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.metrics.ObserveDecision(string(decision))
	s.logger.Info("visit decision recorded",
		"appointment_id", appt.ID,
		"status", appt.Status,
	)
	if s.notifier != nil {
		s.notifier.DecisionRecorded(ctx, appt)
	}
	return appt, nil
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, ErrSlotTaken):
		return "conflict"
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrMissingRelationship),
		errors.Is(err, ErrVisitorCountOutOfRange),
		errors.Is(err, ErrInvalidVisitType),
		errors.Is(err, ErrDateInPast),
		errors.Is(err, patients.ErrPatientNotFound),
		errors.Is(err, hospitals.ErrHospitalNotFound):
		return "rejected"
	default:
		return "error"
	}
}
