package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wardpass/wardpass/internal/hospitals"
	"github.com/wardpass/wardpass/internal/patients"
)

// PatientDirectory resolves patient-facing identifiers; the patients
// package provides the real implementation.
type PatientDirectory interface {
	Lookup(ctx context.Context, hospitalID uuid.UUID, patientID string) (*patients.Patient, error)
}

// Validator enforces the booking business rules. Checks run in a fixed
// order and stop at the first failure.
type Validator struct {
	directory PatientDirectory
	calendar  *Calendar
}

// NewValidator constructs a validator.
func NewValidator(directory PatientDirectory, calendar *Calendar) *Validator {
	if directory == nil {
		panic("appointments: patient directory required")
	}
	if calendar == nil {
		panic("appointments: calendar required")
	}
	return &Validator{directory: directory, calendar: calendar}
}

// Validate checks the request and returns a pending Draft on success.
// The slot availability check queries the calendar afresh; a slot list the
// caller obtained earlier is never trusted.
func (v *Validator) Validate(ctx context.Context, hospital *hospitals.Hospital, req *BookingRequest) (*Draft, error) {
	patient, err := v.directory.Lookup(ctx, hospital.ID, strings.TrimSpace(req.PatientID))
	if err != nil {
		if errors.Is(err, patients.ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("appointments: patient lookup: %w", err)
	}

	if strings.TrimSpace(req.Relationship) == "" {
		return nil, ErrMissingRelationship
	}

	if req.VisitorCount < MinVisitorCount || req.VisitorCount > MaxVisitorCount {
		return nil, ErrVisitorCountOutOfRange
	}

	slots, err := v.calendar.AvailableSlots(ctx, hospital, req.ScheduledFor)
	if err != nil {
		return nil, err
	}
	if !HasSlot(slots, req.ScheduledFor) {
		return nil, ErrSlotUnavailable
	}

	visitType := VisitType(req.VisitType)
	if !visitType.Valid() {
		return nil, ErrInvalidVisitType
	}

	return &Draft{
		UserID:       req.UserID,
		VisitorEmail: req.VisitorEmail,
		PatientID:    patient.ID,
		HospitalID:   hospital.ID,
		Relationship: strings.TrimSpace(req.Relationship),
		VisitType:    visitType,
		VisitorCount: req.VisitorCount,
		ScheduledFor: req.ScheduledFor,
		Status:       StatusPending,
	}, nil
}
