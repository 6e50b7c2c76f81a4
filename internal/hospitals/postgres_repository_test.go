package hospitals

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "name", "address", "timezone", "open_hour", "close_hour", "slot_minutes"}).
		AddRow(id, "Central Hospital", "42 Main St", "UTC", 9, 17, 60)
	mock.ExpectQuery("SELECT id, name, address, timezone").WithArgs(id).WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Central Hospital" {
		t.Fatalf("expected name, got %s", got.Name)
	}
	if got.Hours != (VisitingHours{OpenHour: 9, CloseHour: 17, SlotMinutes: 60}) {
		t.Fatalf("unexpected hours: %+v", got.Hours)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, name, address, timezone").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "address", "timezone", "open_hour", "close_hour", "slot_minutes"}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "address", "timezone", "open_hour", "close_hour", "slot_minutes"}).
		AddRow(uuid.New(), "Central Hospital", "42 Main St", "UTC", 9, 17, 60).
		AddRow(uuid.New(), "Westside Clinic", "7 Side St", "America/New_York", 10, 18, 30)
	mock.ExpectQuery("SELECT id, name, address, timezone").WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(got))
	}
}
