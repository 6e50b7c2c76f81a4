package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database. The
// partial unique index on (hospital_id, scheduled_for) over pending and
// approved rows makes Insert the authoritative slot-conflict arbiter.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("appointments: db required")
	}
	return &PostgresRepository{db: db}
}

const appointmentColumns = `id, user_id, visitor_email, patient_id, hospital_id, relationship, visit_type, visitor_count, scheduled_for, status, created_at, updated_at`

// Insert writes the draft as a new pending appointment. A unique violation
// on the slot index maps to ErrSlotTaken.
func (r *PostgresRepository) Insert(ctx context.Context, draft *Draft) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, user_id, visitor_email, patient_id, hospital_id, relationship, visit_type, visitor_count, scheduled_for, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		draft.UserID,
		draft.VisitorEmail,
		draft.PatientID,
		draft.HospitalID,
		draft.Relationship,
		string(draft.VisitType),
		draft.VisitorCount,
		draft.ScheduledFor,
		string(draft.Status),
	).Scan(&createdAt, &updatedAt); err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:           id,
		UserID:       draft.UserID,
		VisitorEmail: draft.VisitorEmail,
		PatientID:    draft.PatientID,
		HospitalID:   draft.HospitalID,
		Relationship: draft.Relationship,
		VisitType:    draft.VisitType,
		VisitorCount: draft.VisitorCount,
		ScheduledFor: draft.ScheduledFor,
		Status:       draft.Status,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// GetByID fetches an appointment by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return appt, nil
}

// ListByUser returns a visitor's appointments, most recent visit first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id = $1 ORDER BY scheduled_for DESC`
	return r.list(ctx, query, userID)
}

// ListByHospitalBetween returns slot-blocking appointments in [from, to).
func (r *PostgresRepository) ListByHospitalBetween(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE hospital_id = $1
		  AND scheduled_for >= $2 AND scheduled_for < $3
		  AND status IN ('pending', 'approved')
		ORDER BY scheduled_for
	`
	return r.list(ctx, query, hospitalID, from, to)
}

// ListByStatus returns appointments in the given state, oldest first.
func (r *PostgresRepository) ListByStatus(ctx context.Context, status Status) ([]*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, string(status))
}

// UpdateStatus applies a staff decision. The conditional update only
// matches pending rows; when nothing matches, a follow-up read
// distinguishes a missing appointment from an already-decided one.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + appointmentColumns
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, string(status)))
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointments: update status: %w", err)
	}

	var current string
	if err := r.db.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: load status: %w", err)
	}
	return nil, ErrInvalidTransition
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list rows: %w", err)
	}
	return out, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var visitType, status string
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.VisitorEmail,
		&a.PatientID,
		&a.HospitalID,
		&a.Relationship,
		&visitType,
		&a.VisitorCount,
		&a.ScheduledFor,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.VisitType = VisitType(visitType)
	a.Status = Status(status)
	return &a, nil
}
