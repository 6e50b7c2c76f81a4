package hospitals

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
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads the hospital directory from the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("hospitals: db required")
	}
	return &PostgresRepository{db: db}
}

// List returns all hospitals ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*Hospital, error) {
	query := `
		SELECT id, name, address, timezone, open_hour, close_hour, slot_minutes
		FROM hospitals
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("hospitals: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Address,
			&h.Timezone,
			&h.Hours.OpenHour,
			&h.Hours.CloseHour,
			&h.Hours.SlotMinutes,
		); err != nil {
			return nil, fmt.Errorf("hospitals: scan failed: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hospitals: list rows: %w", err)
	}
	return out, nil
}

// GetByID fetches a single hospital.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	query := `
		SELECT id, name, address, timezone, open_hour, close_hour, slot_minutes
		FROM hospitals
		WHERE id = $1
	`
	var h Hospital
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.Name,
		&h.Address,
		&h.Timezone,
		&h.Hours.OpenHour,
		&h.Hours.CloseHour,
		&h.Hours.SlotMinutes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHospitalNotFound
		}
		return nil, fmt.Errorf("hospitals: select failed: %w", err)
	}
	return &h, nil
}
