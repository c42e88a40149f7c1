package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRegistry is an in-process registry used in development mode and
// in tests, when no database is configured.
type MemoryRegistry struct {
	mu       sync.RWMutex
	patients map[string]Patient
	doctors  map[string]Doctor
}

// NewMemoryRegistry returns an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		patients: make(map[string]Patient),
		doctors:  make(map[string]Doctor),
	}
}

// AddPatient registers a patient.
func (r *MemoryRegistry) AddPatient(p Patient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
}

// AddDoctor registers an available doctor.
func (r *MemoryRegistry) AddDoctor(d Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
}

// ResolvePatient looks a patient up by id.
func (r *MemoryRegistry) ResolvePatient(_ context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

// ListAvailableDoctors returns every registered doctor sorted by name.
func (r *MemoryRegistry) ListAvailableDoctors(_ context.Context) ([]Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doctors := make([]Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		doctors = append(doctors, d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}
