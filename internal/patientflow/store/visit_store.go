package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
)

// VisitStore owns visit records and the stage state machine. Advance
// re-checks the visit's current stage under the write lock, so of two
// concurrent advances on the same visit exactly one can succeed; the
// other loses with ErrInvalidTransition.
type VisitStore struct {
	mu     sync.RWMutex
	visits map[string]*models.Visit
	now    func() time.Time
}

// NewVisitStore returns an empty store.
func NewVisitStore() *VisitStore {
	return &VisitStore{
		visits: make(map[string]*models.Visit),
		now:    time.Now,
	}
}

// Create registers a new visit at the reception stage.
func (s *VisitStore) Create(patientID string) *models.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v := &models.Visit{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		CurrentStage:   models.StageReception,
		CreatedAt:      now,
		StageEnteredAt: now,
	}
	s.visits[v.ID] = v
	return cloneVisit(v)
}

// Get returns a copy of the visit.
func (s *VisitStore) Get(visitID string) (*models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.visits[visitID]
	if !ok {
		return nil, fmt.Errorf("visit %s: %w", visitID, models.ErrNotFound)
	}
	return cloneVisit(v), nil
}

// Advance moves the visit to the next stage. The legality check against
// the stage read under the lock doubles as the optimistic concurrency
// guard: once one caller has advanced the visit, a duplicate advance to
// the same stage is no longer a legal edge.
func (s *VisitStore) Advance(visitID string, to models.Stage, doctorID string) (*models.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visits[visitID]
	if !ok {
		return nil, fmt.Errorf("visit %s: %w", visitID, models.ErrNotFound)
	}
	if !models.CanAdvance(v.CurrentStage, to) {
		return nil, fmt.Errorf("cannot advance visit %s from %s to %s: %w", visitID, v.CurrentStage, to, models.ErrInvalidTransition)
	}

	v.CurrentStage = to
	v.StageEnteredAt = s.now()
	if to == models.StageDoctor && doctorID != "" {
		v.AssignedDoctorID = doctorID
	}
	return cloneVisit(v), nil
}

func cloneVisit(v *models.Visit) *models.Visit {
	c := *v
	return &c
}
