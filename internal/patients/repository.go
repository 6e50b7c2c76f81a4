package patients

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for the patient directory
type Repository interface {
	// Lookup resolves the patient-facing identifier within one hospital.
	Lookup(ctx context.Context, hospitalID uuid.UUID, patientID string) (*Patient, error)
	// GetByID fetches a patient by internal id.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

// InMemoryRepository is a Repository backed by a map, used in tests and demos
type InMemoryRepository struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*Patient
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		patients: make(map[uuid.UUID]*Patient),
	}
}

// Put adds or replaces a patient record.
func (r *InMemoryRepository) Put(p *Patient) {
	r.mu.Lock()
	r.patients[p.ID] = p
	r.mu.Unlock()
}

// Lookup resolves a patient-facing identifier within one hospital.
func (r *InMemoryRepository) Lookup(ctx context.Context, hospitalID uuid.UUID, patientID string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.patients {
		if p.HospitalID == hospitalID && p.PatientID == patientID {
			return p, nil
		}
	}
	return nil, ErrPatientNotFound
}

// GetByID fetches a patient by internal id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return p, nil
}
