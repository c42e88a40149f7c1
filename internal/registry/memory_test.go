package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_ResolvePatient(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.AddPatient(Patient{ID: "p1", Name: "Ana Putri"})

	p, err := reg.ResolvePatient(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Putri", p.Name)

	_, err = reg.ResolvePatient(context.Background(), "p2")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistry_ListAvailableDoctorsSorted(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.AddDoctor(Doctor{ID: "d2", Name: "dr. Wijaya"})
	reg.AddDoctor(Doctor{ID: "d1", Name: "dr. Sari"})

	doctors, err := reg.ListAvailableDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "dr. Sari", doctors[0].Name)
	assert.Equal(t, "dr. Wijaya", doctors[1].Name)
}
