package models

import (
	"fmt"
	"time"
)

// TriageRecord holds the clinical intake captured at the triage station.
// There is one record per visit; repeated edits overwrite the previous
// record in full. The doctor station reads it after call-next.
type TriageRecord struct {
	VisitID     string    `json:"visit_id"`
	Temperature *float64  `json:"temperature,omitempty"`
	Systolic    *int      `json:"systolic,omitempty"`
	Diastolic   *int      `json:"diastolic,omitempty"`
	HeartRate   *int      `json:"heart_rate,omitempty"`
	SpO2        *int      `json:"spo2,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	Symptoms    string    `json:"symptoms,omitempty"`
	Allergies   string    `json:"allergies,omitempty"`
	CurrentMeds string    `json:"current_meds,omitempty"`
	PainScale   int       `json:"pain_scale"`
	Priority    Priority  `json:"priority"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks field ranges only; clinical validity is not this
// package's concern.
func (r *TriageRecord) Validate() error {
	if r.PainScale < 0 || r.PainScale > 10 {
		return fmt.Errorf("pain_scale must be between 0 and 10: %w", ErrValidationFailed)
	}
	if !ValidPriority(r.Priority) {
		return fmt.Errorf("unknown priority %q: %w", r.Priority, ErrValidationFailed)
	}
	if r.Temperature != nil && *r.Temperature < 0 {
		return fmt.Errorf("temperature must not be negative: %w", ErrValidationFailed)
	}
	if r.Systolic != nil && *r.Systolic < 0 {
		return fmt.Errorf("systolic must not be negative: %w", ErrValidationFailed)
	}
	if r.Diastolic != nil && *r.Diastolic < 0 {
		return fmt.Errorf("diastolic must not be negative: %w", ErrValidationFailed)
	}
	if r.HeartRate != nil && *r.HeartRate < 0 {
		return fmt.Errorf("heart_rate must not be negative: %w", ErrValidationFailed)
	}
	if r.SpO2 != nil && *r.SpO2 < 0 {
		return fmt.Errorf("spo2 must not be negative: %w", ErrValidationFailed)
	}
	if r.Weight != nil && *r.Weight < 0 {
		return fmt.Errorf("weight must not be negative: %w", ErrValidationFailed)
	}
	if r.Height != nil && *r.Height < 0 {
		return fmt.Errorf("height must not be negative: %w", ErrValidationFailed)
	}
	return nil
}
