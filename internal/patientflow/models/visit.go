package models

import "time"

// Stage is one station in a visit's path through the clinic.
type Stage string

const (
	StageReception Stage = "reception"
	StageTriage    Stage = "triage"
	StageDoctor    Stage = "doctor"
	StagePharmacy  Stage = "pharmacy"
	StageLab       Stage = "lab"
	StageBilling   Stage = "billing"
)

// stageSuccessors lists the forward edges of the visit state machine.
// There is no edge back toward an earlier stage; sending a patient back
// is modeled by the caller as a fresh visit. Billing has no outgoing
// edges and terminates the queue's involvement in the visit.
var stageSuccessors = map[Stage][]Stage{
	StageReception: {StageTriage},
	StageTriage:    {StageDoctor},
	StageDoctor:    {StageBilling, StagePharmacy, StageLab},
	StagePharmacy:  {StageBilling},
	StageLab:       {StageBilling},
}

// ValidStage reports whether s names a known stage.
func ValidStage(s Stage) bool {
	switch s {
	case StageReception, StageTriage, StageDoctor, StagePharmacy, StageLab, StageBilling:
		return true
	}
	return false
}

// CanAdvance reports whether a visit at stage from may advance to stage to.
func CanAdvance(from, to Stage) bool {
	for _, next := range stageSuccessors[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Visit is one patient's end-to-end journey through the stages of a
// single clinic encounter.
type Visit struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	CurrentStage     Stage     `json:"current_stage"`
	AssignedDoctorID string    `json:"assigned_doctor_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	StageEnteredAt   time.Time `json:"stage_entered_at"`
}
