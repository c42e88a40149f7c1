package models

// QueueEvent is the payload broadcast to waiting-room displays whenever a
// queue entry is created or changes status.
type QueueEvent struct {
	EntryID     string `json:"entry_id"`
	VisitID     string `json:"visit_id"`
	Stage       Stage  `json:"stage"`
	Status      Status `json:"status"`
	TokenNumber string `json:"token_number"`
	DoctorID    string `json:"doctor_id,omitempty"`
}

// EventFor builds the broadcast payload for an entry's current state.
func EventFor(e *QueueEntry) QueueEvent {
	return QueueEvent{
		EntryID:     e.ID,
		VisitID:     e.VisitID,
		Stage:       e.Stage,
		Status:      e.Status,
		TokenNumber: e.TokenNumber,
		DoctorID:    e.DoctorID,
	}
}
