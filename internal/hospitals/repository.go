package hospitals

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for hospital directory storage
type Repository interface {
	List(ctx context.Context) ([]*Hospital, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
}

// InMemoryRepository is a Repository backed by a map, used in tests and demos
type InMemoryRepository struct {
	mu        sync.RWMutex
	hospitals map[uuid.UUID]*Hospital
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		hospitals: make(map[uuid.UUID]*Hospital),
	}
}

// Put adds or replaces a hospital record.
func (r *InMemoryRepository) Put(h *Hospital) {
	r.mu.Lock()
	r.hospitals[h.ID] = h
	r.mu.Unlock()
}

// List returns all hospitals ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Hospital, 0, len(r.hospitals))
	for _, h := range r.hospitals {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID retrieves a hospital by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hospitals[id]
	if !ok {
		return nil, ErrHospitalNotFound
	}
	return h, nil
}
