package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Ticket identifies a registration. It carries no capability beyond naming
// the (event, user) pair; whether the ticket is still usable is evaluated at
// check-in time, not at issuance time.
type Ticket struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}

// Encode renders the payload surfaced through the QR symbol.
func (t Ticket) Encode() (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseTicket decodes a scanned payload. Anything that is not a single JSON
// object holding two well-formed ids is ErrMalformedTicket; no storage is
// consulted here.
func ParseTicket(payload string) (Ticket, error) {
	var t Ticket
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Ticket{}, ErrMalformedTicket
	}
	if dec.More() {
		return Ticket{}, ErrMalformedTicket
	}
	if _, err := uuid.Parse(t.EventID); err != nil {
		return Ticket{}, ErrMalformedTicket
	}
	if _, err := uuid.Parse(t.UserID); err != nil {
		return Ticket{}, ErrMalformedTicket
	}
	return t, nil
}
