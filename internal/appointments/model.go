// Package appointments implements the visit booking core: slot derivation,
// request validation, the booking transaction and the staff review workflow.
package appointments

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review state of an appointment. pending is the only
// non-terminal state; approved and rejected are never reversed.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// VisitType distinguishes bedside visits from video calls.
type VisitType string

const (
	VisitInPerson VisitType = "in-person"
	VisitOnline   VisitType = "online"
)

// Valid reports whether v is one of the two supported visit types.
func (v VisitType) Valid() bool {
	return v == VisitInPerson || v == VisitOnline
}

// Visitor count bounds per appointment.
const (
	MinVisitorCount = 1
	MaxVisitorCount = 2
)

// Appointment is a scheduled visit as stored. Status is mutated exactly once
// by staff review; everything else is immutable after booking.
type Appointment struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	VisitorEmail string    `json:"visitor_email,omitempty"`
	PatientID    uuid.UUID `json:"patient_id"`
	HospitalID   uuid.UUID `json:"hospital_id"`
	Relationship string    `json:"relationship"`
	VisitType    VisitType `json:"visit_type"`
	VisitorCount int       `json:"visitor_count"`
	ScheduledFor time.Time `json:"appointment_date"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookingRequest is the visitor's submission. PatientID carries the
// patient-facing identifier, not the internal key; UserID and VisitorEmail
// come from the authenticated identity, never from the body.
type BookingRequest struct {
	HospitalID   uuid.UUID `json:"hospital_id"`
	PatientID    string    `json:"patient_id"`
	Relationship string    `json:"relationship"`
	VisitType    string    `json:"visit_type"`
	VisitorCount int       `json:"visitor_count"`
	ScheduledFor time.Time `json:"appointment_date"`
	UserID       string    `json:"-"`
	VisitorEmail string    `json:"-"`
}

// Draft is a fully validated appointment payload, ready for the single
// inserting write. Status is always pending.
type Draft struct {
	UserID       string
	VisitorEmail string
	PatientID    uuid.UUID
	HospitalID   uuid.UUID
	Relationship string
	VisitType    VisitType
	VisitorCount int
	ScheduledFor time.Time
	Status       Status
}

// Slot is a bookable window at one hospital. Derived on demand from the
// visiting-hours policy, never persisted.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
