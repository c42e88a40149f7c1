package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationToken_RoundTrip(t *testing.T) {
	token, err := GenerateStationToken("secret", "doc-term-3", StationDoctor, "d1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateStationToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "doc-term-3", claims.StationID)
	assert.Equal(t, StationDoctor, claims.Station)
	assert.Equal(t, "d1", claims.DoctorID)
}

func TestStationToken_WrongSecret(t *testing.T) {
	token, err := GenerateStationToken("secret", "r1", StationReception, "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateStationToken("other", token)
	require.Error(t, err)
}

func TestStationToken_Expired(t *testing.T) {
	token, err := GenerateStationToken("secret", "r1", StationReception, "", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateStationToken("secret", token)
	require.Error(t, err)
}

func TestStationToken_EmptySecret(t *testing.T) {
	_, err := GenerateStationToken("", "r1", StationReception, "", time.Now().Add(time.Hour))
	require.Error(t, err)

	_, err = ValidateStationToken("", "whatever")
	require.Error(t, err)
}
