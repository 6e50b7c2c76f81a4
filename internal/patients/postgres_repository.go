package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads the patient registry from the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("patients: db required")
	}
	return &PostgresRepository{db: db}
}

// Lookup resolves the patient-facing identifier within one hospital.
func (r *PostgresRepository) Lookup(ctx context.Context, hospitalID uuid.UUID, patientID string) (*Patient, error) {
	query := `
		SELECT id, hospital_id, name, room_number, ward, patient_id
		FROM patients
		WHERE hospital_id = $1 AND patient_id = $2
	`
	return r.scanOne(r.db.QueryRow(ctx, query, hospitalID, patientID))
}

// GetByID fetches a patient by internal id.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	query := `
		SELECT id, hospital_id, name, room_number, ward, patient_id
		FROM patients
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(
		&p.ID,
		&p.HospitalID,
		&p.Name,
		&p.RoomNumber,
		&p.Ward,
		&p.PatientID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("patients: select failed: %w", err)
	}
	return &p, nil
}
