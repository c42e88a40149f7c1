// Package registry exposes the identity lookups the queue core needs from
// the clinic's master records (patients, doctors). The records themselves
// are owned elsewhere; the queue only carries opaque ids.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an id cannot be resolved.
var ErrNotFound = errors.New("registry: not found")

// Patient is the identity slice of a patient record.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Gender    string    `json:"gender,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// Doctor is the identity slice of a doctor record.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// PatientRegistry resolves patient identities.
type PatientRegistry interface {
	ResolvePatient(ctx context.Context, id string) (*Patient, error)
}

// DoctorDirectory lists the doctors currently available to take patients.
type DoctorDirectory interface {
	ListAvailableDoctors(ctx context.Context) ([]Doctor, error)
}
