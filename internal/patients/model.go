// Package patients resolves hospital-scoped patient identifiers to records.
// The registry itself is maintained upstream; booking only reads it.
package patients

import "github.com/google/uuid"

// Patient is an admitted patient a visitor may book a visit with.
// PatientID is the patient-facing identifier printed on the admission
// paperwork; ID is the internal key.
type Patient struct {
	ID         uuid.UUID `json:"id"`
	HospitalID uuid.UUID `json:"hospital_id"`
	Name       string    `json:"name"`
	RoomNumber string    `json:"room_number"`
	Ward       string    `json:"ward"`
	PatientID  string    `json:"patient_id"`
}
