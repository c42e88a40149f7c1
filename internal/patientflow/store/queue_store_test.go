package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
	"github.com/clinicore/patientflow-backend/internal/patientflow/sequencer"
)

func newTestQueueStore() *QueueStore {
	return NewQueueStore(sequencer.New())
}

func TestInsert_AssignsTokenAndWaitingStatus(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "v1", e.VisitID)
	assert.Equal(t, models.StageReception, e.Stage)
	assert.Equal(t, "R-0001", e.TokenNumber)
	assert.Equal(t, models.StatusWaiting, e.Status)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestInsert_RejectsSecondActiveEntrySameStage(t *testing.T) {
	qs := newTestQueueStore()

	_, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)

	_, err = qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestInsert_AllowedAgainAfterEntryRetired(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	_, err = qs.Skip(e.ID)
	require.NoError(t, err)

	_, err = qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
}

func TestList_OrdersByPriorityThenArrival(t *testing.T) {
	qs := newTestQueueStore()

	// Inserted as standard, emergency, urgent, standard.
	std1, err := qs.Insert("v1", models.StageTriage, models.PriorityStandard, "")
	require.NoError(t, err)
	emg, err := qs.Insert("v2", models.StageTriage, models.PriorityEmergency, "")
	require.NoError(t, err)
	urg, err := qs.Insert("v3", models.StageTriage, models.PriorityUrgent, "")
	require.NoError(t, err)
	std2, err := qs.Insert("v4", models.StageTriage, models.PriorityStandard, "")
	require.NoError(t, err)

	entries := qs.List(models.StageTriage, "")
	require.Len(t, entries, 4)
	assert.Equal(t, emg.ID, entries[0].ID)
	assert.Equal(t, urg.ID, entries[1].ID)
	assert.Equal(t, std1.ID, entries[2].ID)
	assert.Equal(t, std2.ID, entries[3].ID)
}

func TestList_DoctorFilterIncludesUnassignedEntries(t *testing.T) {
	qs := newTestQueueStore()

	mine, err := qs.Insert("v1", models.StageDoctor, models.PriorityStandard, "d1")
	require.NoError(t, err)
	other, err := qs.Insert("v2", models.StageDoctor, models.PriorityStandard, "d2")
	require.NoError(t, err)
	unassigned, err := qs.Insert("v3", models.StageDoctor, models.PriorityStandard, "")
	require.NoError(t, err)

	entries := qs.List(models.StageDoctor, "d1")
	ids := entryIDs(entries)
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, unassigned.ID)
	assert.NotContains(t, ids, other.ID)
}

func TestList_ExcludesEntriesFromPreviousDays(t *testing.T) {
	qs := newTestQueueStore()

	yesterday := time.Now().AddDate(0, 0, -1)
	qs.now = func() time.Time { return yesterday }
	stale, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)

	qs.now = time.Now
	fresh, err := qs.Insert("v2", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)

	entries := qs.List(models.StageReception, "")
	ids := entryIDs(entries)
	assert.Contains(t, ids, fresh.ID)
	assert.NotContains(t, ids, stale.ID)
}

func TestCallNext_ClaimsHighestPriorityOldest(t *testing.T) {
	qs := newTestQueueStore()

	_, err := qs.Insert("v1", models.StageTriage, models.PriorityStandard, "")
	require.NoError(t, err)
	emg, err := qs.Insert("v2", models.StageTriage, models.PriorityEmergency, "")
	require.NoError(t, err)

	called := qs.CallNext(models.StageTriage, "")
	require.NotNil(t, called)
	assert.Equal(t, emg.ID, called.ID)
	assert.Equal(t, models.StatusCalled, called.Status)
	require.NotNil(t, called.CalledAt)
}

func TestCallNext_ReturnsNilWhenNothingWaiting(t *testing.T) {
	qs := newTestQueueStore()
	assert.Nil(t, qs.CallNext(models.StageDoctor, ""))
}

func TestCallNext_ConcurrentCallersEachGetDistinctEntries(t *testing.T) {
	qs := newTestQueueStore()
	const n = 50

	for i := 0; i < n; i++ {
		_, err := qs.Insert(fmt.Sprintf("v%d", i), models.StageReception, models.PriorityStandard, "")
		require.NoError(t, err)
	}

	results := make(chan *models.QueueEntry, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- qs.CallNext(models.StageReception, "")
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for e := range results {
		require.NotNil(t, e, "every caller must receive an entry")
		require.False(t, seen[e.ID], "entry %s handed to two callers", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, n)
	assert.Nil(t, qs.CallNext(models.StageReception, ""), "queue must be drained")
}

func TestCallSpecific_OnlyFromWaiting(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageTriage, models.PriorityStandard, "")
	require.NoError(t, err)

	called, err := qs.CallSpecific(e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCalled, called.Status)

	_, err = qs.CallSpecific(e.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestCallSpecific_UnknownEntry(t *testing.T) {
	qs := newTestQueueStore()
	_, err := qs.CallSpecific("missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestServe_IsIdempotent(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	_, err = qs.CallSpecific(e.ID)
	require.NoError(t, err)

	served, err := qs.Serve(e.ID)
	require.NoError(t, err)
	require.NotNil(t, served.ServedAt)

	again, err := qs.Serve(e.ID)
	require.NoError(t, err)
	assert.Equal(t, served.ServedAt, again.ServedAt, "retry must not alter served_at")
}

func TestServe_FromWaitingFails(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)

	_, err = qs.Serve(e.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestSkip_FromWaitingAndCalled(t *testing.T) {
	qs := newTestQueueStore()

	waiting, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	called, err := qs.Insert("v2", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	_, err = qs.CallSpecific(called.ID)
	require.NoError(t, err)

	skipped, err := qs.Skip(waiting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSkipped, skipped.Status)

	skipped, err = qs.Skip(called.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSkipped, skipped.Status)
}

func TestSkip_FromServedFails(t *testing.T) {
	qs := newTestQueueStore()

	e, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	_, err = qs.CallSpecific(e.ID)
	require.NoError(t, err)
	_, err = qs.Serve(e.ID)
	require.NoError(t, err)

	_, err = qs.Skip(e.ID)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestBoard_MatchesListOrdering(t *testing.T) {
	qs := newTestQueueStore()

	_, err := qs.Insert("v1", models.StageReception, models.PriorityStandard, "")
	require.NoError(t, err)
	_, err = qs.Insert("v2", models.StageReception, models.PriorityEmergency, "")
	require.NoError(t, err)

	board := qs.Board(models.StageReception)
	list := qs.List(models.StageReception, "")
	assert.Equal(t, entryIDs(list), entryIDs(board))
}

func entryIDs(entries []models.QueueEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
