package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLRegistry resolves patients and doctors from the clinic's MariaDB
// master records.
type SQLRegistry struct {
	db *sql.DB
}

// NewSQLRegistry wraps an open database handle.
func NewSQLRegistry(db *sql.DB) *SQLRegistry {
	return &SQLRegistry{db: db}
}

// ResolvePatient looks a patient up by id.
func (r *SQLRegistry) ResolvePatient(ctx context.Context, id string) (*Patient, error) {
	query := `
		SELECT id, name, birth_date, gender, phone
		FROM patients
		WHERE id = ?
	`
	var p Patient
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.BirthDate, &p.Gender, &p.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve patient %s: %v", id, err)
	}
	return &p, nil
}

// ListAvailableDoctors returns the doctors marked available today.
func (r *SQLRegistry) ListAvailableDoctors(ctx context.Context) ([]Doctor, error) {
	query := `
		SELECT id, name, specialty
		FROM doctors
		WHERE is_available = 1 AND deleted_at IS NULL
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %v", err)
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty); err != nil {
			return nil, fmt.Errorf("scan doctor: %v", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list doctors: %v", err)
	}
	return doctors, nil
}
