package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wardpass/wardpass/internal/appointments"
	"github.com/wardpass/wardpass/internal/hospitals"
	"github.com/wardpass/wardpass/internal/patients"
	"github.com/wardpass/wardpass/pkg/logging"
)

// Service emails visitors about their booking and its review outcome. All
// sends are best-effort: a delivery failure is logged and never surfaces to
// the booking or review flow.
type Service struct {
	email     EmailSender
	hospitals hospitals.Repository
	patients  patients.Repository
	logger    *logging.Logger
}

// NewService creates a notification service. A nil sender disables delivery;
// events are still logged.
func NewService(email EmailSender, hospitalRepo hospitals.Repository, patientRepo patients.Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:     email,
		hospitals: hospitalRepo,
		patients:  patientRepo,
		logger:    logger,
	}
}

var _ appointments.Notifier = (*Service)(nil)

// BookingReceived emails the visitor a confirmation that the visit request
// was recorded and awaits staff review.
func (s *Service) BookingReceived(ctx context.Context, appt *appointments.Appointment) {
	if appt.VisitorEmail == "" {
		s.logger.Debug("notify: no visitor email on appointment, skipping", "appointment_id", appt.ID)
		return
	}

	hospitalName, patientName, when := s.describe(ctx, appt)
	subject := "Your visit request was received"
	body := fmt.Sprintf(
		"Your request to visit %s at %s on %s has been received.\n\n"+
			"Hospital staff will review it shortly; you will get another email once a decision is made.\n\n"+
			"Reference: %s\n",
		patientName, hospitalName, when, appt.ID,
	)

	s.send(ctx, appt, EmailMessage{To: appt.VisitorEmail, Subject: subject, Body: body})
}

// DecisionRecorded emails the visitor the staff decision.
func (s *Service) DecisionRecorded(ctx context.Context, appt *appointments.Appointment) {
	if appt.VisitorEmail == "" {
		s.logger.Debug("notify: no visitor email on appointment, skipping", "appointment_id", appt.ID)
		return
	}

	hospitalName, patientName, when := s.describe(ctx, appt)

	var subject, body string
	switch appt.Status {
	case appointments.StatusApproved:
		subject = "Your visit has been approved"
		body = fmt.Sprintf(
			"Your visit to %s at %s on %s has been approved.\n\n"+
				"Please bring photo identification and arrive a few minutes early.\n\n"+
				"Reference: %s\n",
			patientName, hospitalName, when, appt.ID,
		)
	case appointments.StatusRejected:
		subject = "Your visit request was declined"
		body = fmt.Sprintf(
			"Unfortunately your request to visit %s at %s on %s was declined.\n\n"+
				"You are welcome to request a different time.\n\n"+
				"Reference: %s\n",
			patientName, hospitalName, when, appt.ID,
		)
	default:
		s.logger.Warn("notify: decision event for non-terminal status", "appointment_id", appt.ID, "status", appt.Status)
		return
	}

	s.send(ctx, appt, EmailMessage{To: appt.VisitorEmail, Subject: subject, Body: body})
}

// describe resolves display names for the email body. Lookups are
// best-effort; generic placeholders stand in when a record is missing.
func (s *Service) describe(ctx context.Context, appt *appointments.Appointment) (hospitalName, patientName, when string) {
	hospitalName = "the hospital"
	patientName = "your patient"
	loc := time.UTC

	if s.hospitals != nil {
		if hospital, err := s.hospitals.GetByID(ctx, appt.HospitalID); err == nil {
			hospitalName = hospital.Name
			loc = hospital.Location()
		}
	}
	if s.patients != nil {
		if patient, err := s.patients.GetByID(ctx, appt.PatientID); err == nil {
			patientName = patient.Name
		}
	}

	when = appt.ScheduledFor.In(loc).Format("Monday, January 2 at 3:04 PM")
	return hospitalName, patientName, when
}

func (s *Service) send(ctx context.Context, appt *appointments.Appointment, msg EmailMessage) {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping", "appointment_id", appt.ID)
		return
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: email delivery failed", "error", err, "appointment_id", appt.ID, "to", msg.To)
	}
}
