package sequencer

import (
	"fmt"
	"sync"
	"time"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
)

// Sequencer mints the token numbers shown to patients. Numbers are unique
// and strictly increasing within one (stage, local calendar day) scope;
// the counter starts over on the next day so tokens stay human-scannable.
type Sequencer struct {
	mu       sync.Mutex
	counters map[models.Stage]*counter
	now      func() time.Time
}

type counter struct {
	day  string
	next int
}

// New returns a Sequencer counting from 1 for every stage.
func New() *Sequencer {
	return &Sequencer{
		counters: make(map[models.Stage]*counter),
		now:      time.Now,
	}
}

// Next mints the next token for stage. Safe under concurrent calls from
// multiple stations; two calls never return the same value.
func (s *Sequencer) Next(stage models.Stage) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.now().Format("2006-01-02")
	c := s.counters[stage]
	if c == nil || c.day != day {
		c = &counter{day: day}
		s.counters[stage] = c
	}
	c.next++
	return fmt.Sprintf("%s-%04d", tokenPrefix(stage), c.next)
}

// tokenPrefix is the single letter printed on tickets for each stage.
func tokenPrefix(stage models.Stage) string {
	switch stage {
	case models.StageReception:
		return "R"
	case models.StageTriage:
		return "T"
	case models.StageDoctor:
		return "D"
	case models.StagePharmacy:
		return "P"
	case models.StageLab:
		return "L"
	case models.StageBilling:
		return "B"
	default:
		return "Q"
	}
}
