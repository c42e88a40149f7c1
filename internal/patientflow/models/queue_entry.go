package models

import "time"

// Priority orders entries within a stage queue ahead of arrival time.
type Priority string

const (
	PriorityStandard  Priority = "standard"
	PriorityUrgent    Priority = "urgent"
	PriorityEmergency Priority = "emergency"
)

// Rank returns the numeric weight of a priority; higher is called first.
func (p Priority) Rank() int {
	switch p {
	case PriorityEmergency:
		return 2
	case PriorityUrgent:
		return 1
	default:
		return 0
	}
}

// ValidPriority reports whether p names a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityStandard, PriorityUrgent, PriorityEmergency:
		return true
	}
	return false
}

// Status is the lifecycle state of a queue entry. Served and skipped are
// terminal; an entry never changes status again once it reaches either.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusCalled  Status = "called"
	StatusServed  Status = "served"
	StatusSkipped Status = "skipped"
)

// QueueEntry is one token in a stage queue, owned by a visit.
type QueueEntry struct {
	ID          string     `json:"id"`
	VisitID     string     `json:"visit_id"`
	Stage       Stage      `json:"stage"`
	TokenNumber string     `json:"token_number"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DoctorID    string     `json:"doctor_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CalledAt    *time.Time `json:"called_at,omitempty"`
	ServedAt    *time.Time `json:"served_at,omitempty"`
}

// Active reports whether the entry still occupies its stage queue.
func (e *QueueEntry) Active() bool {
	return e.Status == StatusWaiting || e.Status == StatusCalled
}
