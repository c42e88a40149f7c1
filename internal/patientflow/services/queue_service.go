package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
	"github.com/clinicore/patientflow-backend/internal/patientflow/store"
	"github.com/clinicore/patientflow-backend/internal/registry"
)

// Notifier receives queue events for fan-out to connected displays.
// The websocket hub implements it; tests pass nil.
type Notifier interface {
	Publish(event models.QueueEvent)
}

// QueueService is the operation surface every station terminal calls. It
// composes the sequencer-backed queue store, the visit state machine, the
// triage record store and the external patient registry.
type QueueService struct {
	visits   *store.VisitStore
	queue    *store.QueueStore
	triage   *store.TriageStore
	patients registry.PatientRegistry
	notifier Notifier
	log      zerolog.Logger
}

// NewQueueService wires the facade.
func NewQueueService(visits *store.VisitStore, queue *store.QueueStore, triage *store.TriageStore, patients registry.PatientRegistry, notifier Notifier, log zerolog.Logger) *QueueService {
	return &QueueService{
		visits:   visits,
		queue:    queue,
		triage:   triage,
		patients: patients,
		notifier: notifier,
		log:      log,
	}
}

// BoardSnapshot is the aggregate view consumed by waiting-room displays.
type BoardSnapshot struct {
	Stage   models.Stage        `json:"stage"`
	Entries []models.QueueEntry `json:"entries"`
	Waiting int                 `json:"waiting"`
	Called  int                 `json:"called"`
}

// CreateVisit registers a new visit for the patient and issues its
// reception token.
func (s *QueueService) CreateVisit(ctx context.Context, patientID string) (*models.Visit, *models.QueueEntry, error) {
	if patientID == "" {
		return nil, nil, fmt.Errorf("patient_id is required: %w", models.ErrValidationFailed)
	}
	if _, err := s.patients.ResolvePatient(ctx, patientID); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, nil, fmt.Errorf("patient %s: %w", patientID, models.ErrNotFound)
		}
		return nil, nil, err
	}

	v := s.visits.Create(patientID)
	e, err := s.queue.Insert(v.ID, models.StageReception, models.PriorityStandard, "")
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("visit_id", v.ID).
		Str("patient_id", patientID).
		Str("token", e.TokenNumber).
		Msg("visit created")
	s.publish(e)
	return v, e, nil
}

// Advance moves the visit to its next stage and issues the new stage's
// token. The prior stage's entry is not served here; the owning station
// serves it explicitly once the advance has succeeded, so a failed serve
// stays visible as its own recoverable error.
//
// When advancing into the doctor stage, the entry's priority is taken
// from the triage record, which is the source of truth written back when
// triage completes.
func (s *QueueService) Advance(ctx context.Context, visitID string, to models.Stage, doctorID string) (*models.QueueEntry, error) {
	if !models.ValidStage(to) {
		return nil, fmt.Errorf("unknown stage %q: %w", to, models.ErrValidationFailed)
	}

	priority := models.PriorityStandard
	if to == models.StageDoctor {
		if rec := s.triage.Get(visitID); rec != nil && rec.Priority != "" {
			priority = rec.Priority
		}
	}

	v, err := s.visits.Advance(visitID, to, doctorID)
	if err != nil {
		return nil, err
	}

	entryDoctor := ""
	if to == models.StageDoctor {
		entryDoctor = v.AssignedDoctorID
	}
	e, err := s.queue.Insert(v.ID, to, priority, entryDoctor)
	if err != nil {
		// The stage moved but the new entry could not be created; surface
		// the error so the station re-polls instead of trusting its local
		// state.
		s.log.Error().Err(err).
			Str("visit_id", visitID).
			Str("stage", string(to)).
			Msg("visit advanced but entry insert failed")
		return nil, err
	}

	s.log.Info().
		Str("visit_id", visitID).
		Str("stage", string(to)).
		Str("token", e.TokenNumber).
		Msg("visit advanced")
	s.publish(e)
	return e, nil
}

// ListQueue returns the active entries for a stage, scoped to one doctor
// when doctorID is given.
func (s *QueueService) ListQueue(stage models.Stage, doctorID string) ([]models.QueueEntry, error) {
	if !models.ValidStage(stage) {
		return nil, fmt.Errorf("unknown stage %q: %w", stage, models.ErrValidationFailed)
	}
	return s.queue.List(stage, doctorID), nil
}

// CallNext claims the next waiting entry for the scope. A nil entry with a
// nil error means nothing is waiting; that is a defined empty result, not
// a failure.
func (s *QueueService) CallNext(stage models.Stage, doctorID string) (*models.QueueEntry, error) {
	if !models.ValidStage(stage) {
		return nil, fmt.Errorf("unknown stage %q: %w", stage, models.ErrValidationFailed)
	}
	e := s.queue.CallNext(stage, doctorID)
	if e != nil {
		s.publish(e)
	}
	return e, nil
}

// CallSpecific claims an explicitly named waiting entry.
func (s *QueueService) CallSpecific(entryID string) (*models.QueueEntry, error) {
	e, err := s.queue.CallSpecific(entryID)
	if err != nil {
		return nil, err
	}
	s.publish(e)
	return e, nil
}

// Serve retires a called entry; idempotent for already-served entries.
func (s *QueueService) Serve(entryID string) (*models.QueueEntry, error) {
	e, err := s.queue.Serve(entryID)
	if err != nil {
		return nil, err
	}
	s.publish(e)
	return e, nil
}

// Skip removes a waiting or called entry from its queue.
func (s *QueueService) Skip(entryID string) (*models.QueueEntry, error) {
	e, err := s.queue.Skip(entryID)
	if err != nil {
		return nil, err
	}
	s.publish(e)
	return e, nil
}

// Board returns the waiting-room snapshot for a stage.
func (s *QueueService) Board(stage models.Stage) (*BoardSnapshot, error) {
	if !models.ValidStage(stage) {
		return nil, fmt.Errorf("unknown stage %q: %w", stage, models.ErrValidationFailed)
	}
	entries := s.queue.Board(stage)
	snap := &BoardSnapshot{Stage: stage, Entries: entries}
	for _, e := range entries {
		switch e.Status {
		case models.StatusWaiting:
			snap.Waiting++
		case models.StatusCalled:
			snap.Called++
		}
	}
	return snap, nil
}

// GetTriage returns the triage record for the visit, or nil when triage
// has not been recorded yet.
func (s *QueueService) GetTriage(visitID string) (*models.TriageRecord, error) {
	if _, err := s.visits.Get(visitID); err != nil {
		return nil, err
	}
	return s.triage.Get(visitID), nil
}

// PutTriage overwrites the triage record for the visit. Allowed at any
// time before billing; an empty priority defaults to standard.
func (s *QueueService) PutTriage(visitID string, record models.TriageRecord) (*models.TriageRecord, error) {
	v, err := s.visits.Get(visitID)
	if err != nil {
		return nil, err
	}
	if v.CurrentStage == models.StageBilling {
		return nil, fmt.Errorf("triage is read-only once the visit reaches billing: %w", models.ErrInvalidTransition)
	}
	if record.Priority == "" {
		record.Priority = models.PriorityStandard
	}
	return s.triage.Put(visitID, record)
}

func (s *QueueService) publish(e *models.QueueEntry) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(models.EventFor(e))
}
