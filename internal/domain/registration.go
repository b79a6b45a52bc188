package domain

import "time"

// TicketState is the lifecycle of a user's admission to one event.
type TicketState string

const (
	TicketStateUnregistered TicketState = "unregistered"
	TicketStateUnused       TicketState = "unused"
	TicketStateUsed         TicketState = "used"
)

// Registration is one (event, user) ledger row. A single row carries both the
// event's registrant-set membership and the holder's ticket state, so both
// sides of a registration commit or fail together.
type Registration struct {
	EventID      string
	UserID       string
	Used         bool
	RegisteredAt time.Time
	UsedAt       *time.Time
}

// State maps the row onto the ticket lifecycle. A missing row is
// TicketStateUnregistered; callers holding a Registration are past that.
func (r Registration) State() TicketState {
	if r.Used {
		return TicketStateUsed
	}
	return TicketStateUnused
}
