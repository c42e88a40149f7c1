package store

import (
	"sync"
	"time"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
)

// TriageStore keeps one triage record per visit. Put overwrites the whole
// record; there is no patch or merge, and records are never deleted here.
type TriageStore struct {
	mu      sync.RWMutex
	records map[string]*models.TriageRecord
	now     func() time.Time
}

// NewTriageStore returns an empty store.
func NewTriageStore() *TriageStore {
	return &TriageStore{
		records: make(map[string]*models.TriageRecord),
		now:     time.Now,
	}
}

// Get returns a copy of the record for the visit, or nil when triage has
// not been recorded yet.
func (s *TriageStore) Get(visitID string) *models.TriageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[visitID]
	if !ok {
		return nil
	}
	return cloneTriage(r)
}

// Put validates and stores the record for the visit, replacing any
// earlier one.
func (s *TriageStore) Put(visitID string, record models.TriageRecord) (*models.TriageRecord, error) {
	record.VisitID = visitID
	if err := record.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.UpdatedAt = s.now()
	s.records[visitID] = cloneTriage(&record)
	return cloneTriage(&record), nil
}

func cloneTriage(r *models.TriageRecord) *models.TriageRecord {
	c := *r
	c.Temperature = cloneFloat(r.Temperature)
	c.Systolic = cloneInt(r.Systolic)
	c.Diastolic = cloneInt(r.Diastolic)
	c.HeartRate = cloneInt(r.HeartRate)
	c.SpO2 = cloneInt(r.SpO2)
	c.Weight = cloneFloat(r.Weight)
	c.Height = cloneFloat(r.Height)
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
