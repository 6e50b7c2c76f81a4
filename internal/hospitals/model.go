// Package hospitals exposes the hospital directory and each hospital's
// visiting-hours policy. Records are maintained by hospital administration
// and are read-only to the booking flow.
package hospitals

import (
	"time"

	"github.com/google/uuid"
)

// VisitingHours is the bookable window for a hospital. Slots are carved out
// of [OpenHour, CloseHour) in SlotMinutes increments.
type VisitingHours struct {
	OpenHour    int `json:"open_hour"`
	CloseHour   int `json:"close_hour"`
	SlotMinutes int `json:"slot_minutes"`
}

// Valid reports whether the window can produce at least one slot.
func (vh VisitingHours) Valid() bool {
	if vh.SlotMinutes <= 0 {
		return false
	}
	if vh.OpenHour < 0 || vh.CloseHour > 24 || vh.OpenHour >= vh.CloseHour {
		return false
	}
	return (vh.CloseHour-vh.OpenHour)*60 >= vh.SlotMinutes
}

// DefaultVisitingHours applies when a hospital record predates hours
// configuration: 09:00-17:00, hourly.
var DefaultVisitingHours = VisitingHours{OpenHour: 9, CloseHour: 17, SlotMinutes: 60}

// Hospital is a bookable facility.
type Hospital struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Address  string        `json:"address"`
	Timezone string        `json:"timezone"`
	Hours    VisitingHours `json:"visiting_hours"`
}

// Location resolves the hospital's IANA timezone, falling back to UTC when
// the stored name is empty or unknown.
func (h *Hospital) Location() *time.Location {
	if h.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
