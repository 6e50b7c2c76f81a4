package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage. Insert is the
// sole arbiter of slot conflicts: implementations must reject a draft whose
// (hospital, scheduled_for) pair collides with an existing pending or
// approved appointment, returning ErrSlotTaken.
type Repository interface {
	Insert(ctx context.Context, draft *Draft) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]*Appointment, error)
	ListByHospitalBetween(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status Status) ([]*Appointment, error)
	// UpdateStatus applies a staff decision. Only pending appointments may
	// transition; anything else fails with ErrInvalidTransition and leaves
	// the stored record untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error)
}

// InMemoryRepository is a Repository backed by a map. It mirrors the
// database's conflict and transition semantics so service-level tests,
// including the booking race, run against the same contract.
type InMemoryRepository struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appts: make(map[uuid.UUID]*Appointment),
	}
}

// Insert stores a draft, enforcing slot uniqueness under the lock.
func (r *InMemoryRepository) Insert(ctx context.Context, draft *Draft) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.appts {
		if a.HospitalID == draft.HospitalID &&
			a.ScheduledFor.Equal(draft.ScheduledFor) &&
			(a.Status == StatusPending || a.Status == StatusApproved) {
			return nil, ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	appt := &Appointment{
		ID:           uuid.New(),
		UserID:       draft.UserID,
		VisitorEmail: draft.VisitorEmail,
		PatientID:    draft.PatientID,
		HospitalID:   draft.HospitalID,
		Relationship: draft.Relationship,
		VisitType:    draft.VisitType,
		VisitorCount: draft.VisitorCount,
		ScheduledFor: draft.ScheduledFor,
		Status:       draft.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.appts[appt.ID] = appt
	return appt, nil
}

// GetByID retrieves an appointment by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

// ListByUser returns a visitor's appointments, most recent visit first.
func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, a := range r.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.After(out[j].ScheduledFor) })
	return out, nil
}

// ListByHospitalBetween returns slot-blocking appointments in [from, to).
func (r *InMemoryRepository) ListByHospitalBetween(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, a := range r.appts {
		if a.HospitalID != hospitalID {
			continue
		}
		if a.Status != StatusPending && a.Status != StatusApproved {
			continue
		}
		if a.ScheduledFor.Before(from) || !a.ScheduledFor.Before(to) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

// ListByStatus returns appointments in the given state, oldest first.
func (r *InMemoryRepository) ListByStatus(ctx context.Context, status Status) ([]*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Appointment
	for _, a := range r.appts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus applies a staff decision to a pending appointment.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	appt.Status = status
	appt.UpdatedAt = time.Now().UTC()
	return appt, nil
}
