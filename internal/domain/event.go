package domain

import "time"

// Event mirrors the catalog collaborator's record. This service only reads
// events; creation and editing happen elsewhere.
type Event struct {
	ID            string
	Name          string
	Description   string
	Location      string
	IsVirtual     bool
	CreatedBy     string
	StartsAt      time.Time
	EndsAt        time.Time
	CapacityLimit int
	CreatedAt     time.Time
}

// Unlimited reports whether the event has no admission ceiling. An absent or
// zero capacity limit disables the ceiling entirely.
func (e Event) Unlimited() bool {
	return e.CapacityLimit <= 0
}

// EventSummary is the catalog read model: an event plus the attendance facts
// the listing pages render.
type EventSummary struct {
	Event
	RegisteredCount int
	// Going reports whether the requesting user holds a registration.
	Going bool
}

// AvailableSlots returns the remaining admission slots, never negative.
// Meaningless when the event is unlimited.
func (s EventSummary) AvailableSlots() int {
	if s.Unlimited() {
		return 0
	}
	remaining := s.CapacityLimit - s.RegisteredCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
