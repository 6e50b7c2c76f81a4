package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardpass/wardpass/internal/hospitals"
)

// BlockingLister returns the appointments that occupy slots within a time
// window: pending and approved ones. Rejected appointments free their slot.
type BlockingLister interface {
	ListByHospitalBetween(ctx context.Context, hospitalID uuid.UUID, from, to time.Time) ([]*Appointment, error)
}

// Calendar derives the bookable slots for a hospital and day.
//
// The result is advisory: between deriving it and inserting an appointment
// another booking can win the slot. The store's uniqueness constraint is the
// only correctness guarantee; callers must treat a calendar hit as UX, not
// as a reservation.
type Calendar struct {
	appts BlockingLister
}

// NewCalendar constructs a slot calendar backed by the appointment store.
func NewCalendar(appts BlockingLister) *Calendar {
	if appts == nil {
		panic("appointments: blocking lister required")
	}
	return &Calendar{appts: appts}
}

// AvailableSlots returns the free slots for the given civil day, in
// chronological order. The day is interpreted in the hospital's local time;
// days before today yield ErrDateInPast and a day with nothing free yields
// an empty slice, not an error.
func (c *Calendar) AvailableSlots(ctx context.Context, hospital *hospitals.Hospital, day time.Time) ([]Slot, error) {
	loc := hospital.Location()
	now := time.Now().In(loc)

	year, month, dom := day.Date()
	dayStart := time.Date(year, month, dom, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if dayStart.Before(today) {
		return nil, ErrDateInPast
	}

	hours := hospital.Hours
	if !hours.Valid() {
		hours = hospitals.DefaultVisitingHours
	}
	duration := time.Duration(hours.SlotMinutes) * time.Minute

	existing, err := c.appts.ListByHospitalBetween(ctx, hospital.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("appointments: list booked slots: %w", err)
	}

	slots := make([]Slot, 0, (hours.CloseHour-hours.OpenHour)*60/hours.SlotMinutes)
	for startMin := hours.OpenHour * 60; startMin+hours.SlotMinutes <= hours.CloseHour*60; startMin += hours.SlotMinutes {
		start := dayStart.Add(time.Duration(startMin) * time.Minute)
		end := start.Add(duration)

		// Slots already underway today are not bookable.
		if start.Before(now) {
			continue
		}
		if slotTaken(existing, start, end, duration) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end})
	}
	return slots, nil
}

func slotTaken(existing []*Appointment, start, end time.Time, duration time.Duration) bool {
	for _, a := range existing {
		if a.Status != StatusPending && a.Status != StatusApproved {
			continue
		}
		apptEnd := a.ScheduledFor.Add(duration)
		if a.ScheduledFor.Before(end) && apptEnd.After(start) {
			return true
		}
	}
	return false
}

// HasSlot reports whether a slot starting exactly at start is in slots.
func HasSlot(slots []Slot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return true
		}
	}
	return false
}
