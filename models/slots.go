package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date layout used across the engine.
const DateLayout = "2006-01-02"

// TimeLayout is the layout for times of day (e.g. slot start times).
const TimeLayout = "15:04"

// TimeTemplate is a named recurring window (e.g. "Morning") under which
// concrete slots are generated. Immutable once issued by the scheduling API.
type TimeTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// Slot is one concrete bookable time unit on a specific date. Capacity values
// are a read-only, possibly-stale mirror of the counter owned by the
// scheduling API.
type Slot struct {
	StartTime         string `json:"startTime"` // HH:MM
	EndTime           string `json:"endTime"`   // HH:MM
	AvailableCapacity int    `json:"availableCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// TemplateSlots pairs a time template with its concrete slots for one date.
type TemplateSlots struct {
	Template TimeTemplate `json:"template"`
	Slots    []Slot       `json:"slots"`
}

// AvailabilitySnapshot is the result of one availability fetch for a single
// (sede, modality, date) key. Snapshots have no built-in expiry; staleness
// within a session is accepted in exchange for fewer network calls.
type AvailabilitySnapshot struct {
	SedeID     string          `json:"sedeId"`
	ModalityID string          `json:"modalityId"`
	Date       string          `json:"date"` // ISO calendar date
	Entries    []TemplateSlots `json:"entries"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

// NewTimeTemplate validates a template coming off the wire.
func NewTimeTemplate(id, name, startTime, endTime string) (TimeTemplate, error) {
	if id == "" {
		return TimeTemplate{}, fmt.Errorf("time template: missing id")
	}
	if _, err := time.Parse(TimeLayout, startTime); err != nil {
		return TimeTemplate{}, fmt.Errorf("time template %s: bad start time %q", id, startTime)
	}
	if _, err := time.Parse(TimeLayout, endTime); err != nil {
		return TimeTemplate{}, fmt.Errorf("time template %s: bad end time %q", id, endTime)
	}
	return TimeTemplate{ID: id, Name: name, StartTime: startTime, EndTime: endTime}, nil
}

// NewSlot validates a slot coming off the wire. Capacity invariants:
// 0 <= available <= total, total > 0.
func NewSlot(startTime, endTime string, available, total int) (Slot, error) {
	if _, err := time.Parse(TimeLayout, startTime); err != nil {
		return Slot{}, fmt.Errorf("slot: bad start time %q", startTime)
	}
	if _, err := time.Parse(TimeLayout, endTime); err != nil {
		return Slot{}, fmt.Errorf("slot: bad end time %q", endTime)
	}
	if total <= 0 {
		return Slot{}, fmt.Errorf("slot %s: total capacity must be positive, got %d", startTime, total)
	}
	if available < 0 || available > total {
		return Slot{}, fmt.Errorf("slot %s: available capacity %d out of range [0,%d]", startTime, available, total)
	}
	return Slot{StartTime: startTime, EndTime: endTime, AvailableCapacity: available, TotalCapacity: total}, nil
}

// FindSlot returns the slot whose start time matches exactly, searching every
// template's slot list.
func (s *AvailabilitySnapshot) FindSlot(startTime string) (Slot, bool) {
	for _, entry := range s.Entries {
		for _, slot := range entry.Slots {
			if slot.StartTime == startTime {
				return slot, true
			}
		}
	}
	return Slot{}, false
}
