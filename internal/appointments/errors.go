package appointments

import "errors"

var (
	// ErrMissingRelationship is returned when the relationship field is empty
	ErrMissingRelationship = errors.New("relationship with the patient is required")

	// ErrVisitorCountOutOfRange is returned when the visitor count is outside [1,2]
	ErrVisitorCountOutOfRange = errors.New("visitor count must be 1 or 2")

	// ErrInvalidVisitType is returned for visit types other than in-person or online
	ErrInvalidVisitType = errors.New("visit type must be in-person or online")

	// ErrDateInPast is returned when the requested day is before today in the
	// hospital's local time
	ErrDateInPast = errors.New("visit date is in the past")

	// ErrSlotUnavailable is returned when the requested slot is not among the
	// currently available slots (advisory check before the write)
	ErrSlotUnavailable = errors.New("requested slot is no longer available")

	// ErrSlotTaken is returned when the store rejects the insert because a
	// concurrent booking won the same slot (authoritative check)
	ErrSlotTaken = errors.New("slot was just booked by someone else")

	// ErrAppointmentNotFound is returned when no appointment matches the given id
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition is returned when a decision is applied to an
	// appointment that is no longer pending
	ErrInvalidTransition = errors.New("appointment has already been decided")

	// ErrInvalidDecision is returned when a staff decision is neither
	// approved nor rejected
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)
