package sequencer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
)

func TestNext_SequentialTokensIncrease(t *testing.T) {
	s := New()

	first := s.Next(models.StageReception)
	second := s.Next(models.StageReception)
	third := s.Next(models.StageReception)

	assert.Equal(t, "R-0001", first)
	assert.Equal(t, "R-0002", second)
	assert.Equal(t, "R-0003", third)
	assert.True(t, first < second && second < third, "tokens must sort in issuance order")
}

func TestNext_StagesCountIndependently(t *testing.T) {
	s := New()

	assert.Equal(t, "R-0001", s.Next(models.StageReception))
	assert.Equal(t, "T-0001", s.Next(models.StageTriage))
	assert.Equal(t, "D-0001", s.Next(models.StageDoctor))
	assert.Equal(t, "R-0002", s.Next(models.StageReception))
}

func TestNext_ConcurrentCallsNeverCollide(t *testing.T) {
	s := New()
	const n = 200

	tokens := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens <- s.Next(models.StageTriage)
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]bool)
	for tok := range tokens {
		require.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
	assert.Len(t, seen, n)
}

func TestNext_ResetsAtDayBoundary(t *testing.T) {
	s := New()
	day := time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	assert.Equal(t, "R-0001", s.Next(models.StageReception))
	assert.Equal(t, "R-0002", s.Next(models.StageReception))

	s.now = func() time.Time { return day.Add(time.Hour) } // past midnight
	assert.Equal(t, "R-0001", s.Next(models.StageReception))
}
