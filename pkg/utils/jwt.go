package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Station roles carried in terminal tokens.
const (
	StationReception = "reception"
	StationTriage    = "triage"
	StationDoctor    = "doctor"
	StationBoard     = "board"
)

// Claims carried by a station terminal's JWT. Tokens are minted
// out-of-band when a terminal is provisioned; authenticating the people
// using the terminal is an external concern.
type Claims struct {
	StationID string `json:"station_id"`
	Station   string `json:"station"`
	DoctorID  string `json:"doctor_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateStationToken mints an HS256 token for a station terminal.
func GenerateStationToken(secret, stationID, station, doctorID string, exp time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	claims := Claims{
		StationID: stationID,
		Station:   station,
		DoctorID:  doctorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateStationToken parses and verifies a station token.
func ValidateStationToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
