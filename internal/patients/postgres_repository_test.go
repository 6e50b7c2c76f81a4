package patients

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_Lookup(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	hospitalID := uuid.New()
	patientUUID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "hospital_id", "name", "room_number", "ward", "patient_id"}).
		AddRow(patientUUID, hospitalID, "Ada Jensen", "204", "Cardiology", "P-1001")
	mock.ExpectQuery("SELECT id, hospital_id, name, room_number").
		WithArgs(hospitalID, "P-1001").
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.Lookup(context.Background(), hospitalID, "P-1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != patientUUID || got.Ward != "Cardiology" {
		t.Fatalf("unexpected patient: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Lookup_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	hospitalID := uuid.New()
	mock.ExpectQuery("SELECT id, hospital_id, name, room_number").
		WithArgs(hospitalID, "NOPE").
		WillReturnRows(pgxmock.NewRows([]string{"id", "hospital_id", "name", "room_number", "ward", "patient_id"}))

	repo := NewPostgresRepository(mock)
	if _, err := repo.Lookup(context.Background(), hospitalID, "NOPE"); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}
