package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
	"github.com/clinicore/patientflow-backend/internal/patientflow/sequencer"
)

// QueueStore holds the queue entries for every stage and owns their status
// transitions. A single RWMutex serializes mutations; list and board
// snapshots take only the read lock, so displays polling at high frequency
// never wait behind more than one entry mutation.
type QueueStore struct {
	mu      sync.RWMutex
	entries map[string]*models.QueueEntry
	seq     *sequencer.Sequencer
	now     func() time.Time
}

// NewQueueStore returns an empty store issuing tokens from seq.
func NewQueueStore(seq *sequencer.Sequencer) *QueueStore {
	return &QueueStore{
		entries: make(map[string]*models.QueueEntry),
		seq:     seq,
		now:     time.Now,
	}
}

// Insert allocates a token and creates a waiting entry for the visit at
// the given stage. The visit must not already hold an active entry at
// that stage.
func (s *QueueStore) Insert(visitID string, stage models.Stage, priority models.Priority, doctorID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.VisitID == visitID && e.Stage == stage && e.Active() {
			return nil, fmt.Errorf("visit %s already has an active %s entry: %w", visitID, stage, models.ErrInvalidTransition)
		}
	}

	e := &models.QueueEntry{
		ID:          uuid.New().String(),
		VisitID:     visitID,
		Stage:       stage,
		TokenNumber: s.seq.Next(stage),
		Priority:    priority,
		Status:      models.StatusWaiting,
		DoctorID:    doctorID,
		CreatedAt:   s.now(),
	}
	s.entries[e.ID] = e
	return cloneEntry(e), nil
}

// List returns today's active entries for a stage ordered by priority then
// arrival. When doctorID is given, entries bound to another doctor are
// excluded; unbound entries stay visible to every doctor's station so they
// cannot starve behind a doctor filter.
func (s *QueueStore) List(stage models.Stage, doctorID string) []models.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := s.now()
	var out []models.QueueEntry
	for _, e := range s.entries {
		if s.matches(e, stage, doctorID, day) {
			out = append(out, *cloneEntry(e))
		}
	}
	sortEntries(out)
	return out
}

// Board is the read-only waiting-room view: the same snapshot as List
// without doctor scoping.
func (s *QueueStore) Board(stage models.Stage) []models.QueueEntry {
	return s.List(stage, "")
}

// CallNext claims the highest-priority, oldest waiting entry in the scope
// and marks it called. Returns nil when nothing is waiting. The write lock
// makes the select-and-transition atomic, so no entry is ever handed to
// two concurrent callers.
func (s *QueueStore) CallNext(stage models.Stage, doctorID string) *models.QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.now()
	var waiting []*models.QueueEntry
	for _, e := range s.entries {
		if e.Status == models.StatusWaiting && s.matches(e, stage, doctorID, day) {
			waiting = append(waiting, e)
		}
	}
	if len(waiting) == 0 {
		return nil
	}
	sort.SliceStable(waiting, func(i, j int) bool {
		return entryLess(waiting[i], waiting[j])
	})

	e := waiting[0]
	now := s.now()
	e.Status = models.StatusCalled
	e.CalledAt = &now
	return cloneEntry(e)
}

// CallSpecific marks an explicitly named waiting entry as called.
func (s *QueueStore) CallSpecific(entryID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("queue entry %s: %w", entryID, models.ErrNotFound)
	}
	if e.Status != models.StatusWaiting {
		return nil, fmt.Errorf("cannot call entry in status %s: %w", e.Status, models.ErrInvalidTransition)
	}
	now := s.now()
	e.Status = models.StatusCalled
	e.CalledAt = &now
	return cloneEntry(e), nil
}

// Serve retires a called entry. Serving an already-served entry is a
// no-op success so polling stations may safely retry.
func (s *QueueStore) Serve(entryID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("queue entry %s: %w", entryID, models.ErrNotFound)
	}
	switch e.Status {
	case models.StatusServed:
		return cloneEntry(e), nil
	case models.StatusCalled:
		now := s.now()
		e.Status = models.StatusServed
		e.ServedAt = &now
		return cloneEntry(e), nil
	default:
		return nil, fmt.Errorf("cannot serve entry in status %s: %w", e.Status, models.ErrInvalidTransition)
	}
}

// Skip removes a waiting or called entry from the queue.
func (s *QueueStore) Skip(entryID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("queue entry %s: %w", entryID, models.ErrNotFound)
	}
	if !e.Active() {
		return nil, fmt.Errorf("cannot skip entry in status %s: %w", e.Status, models.ErrInvalidTransition)
	}
	e.Status = models.StatusSkipped
	return cloneEntry(e), nil
}

// matches applies the stage, day and doctor scoping shared by List,
// Board and CallNext. Callers hold at least the read lock.
func (s *QueueStore) matches(e *models.QueueEntry, stage models.Stage, doctorID string, day time.Time) bool {
	if e.Stage != stage || !e.Active() {
		return false
	}
	if !sameDay(e.CreatedAt, day) {
		return false
	}
	if doctorID != "" && e.DoctorID != "" && e.DoctorID != doctorID {
		return false
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// entryLess orders by priority descending, then arrival ascending. The
// token number breaks ties between entries created in the same instant.
func entryLess(a, b *models.QueueEntry) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() > b.Priority.Rank()
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.TokenNumber < b.TokenNumber
}

func sortEntries(entries []models.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entryLess(&entries[i], &entries[j])
	})
}

// cloneEntry copies an entry so callers never share memory with the store.
func cloneEntry(e *models.QueueEntry) *models.QueueEntry {
	c := *e
	if e.CalledAt != nil {
		t := *e.CalledAt
		c.CalledAt = &t
	}
	if e.ServedAt != nil {
		t := *e.ServedAt
		c.ServedAt = &t
	}
	return &c
}
