package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// EventReader is the minimal interface needed for catalog reads.
type EventReader interface {
	ListEvents(ctx context.Context, userID string) ([]domain.EventSummary, error)
	GetEvent(ctx context.Context, eventID, userID string) (domain.EventSummary, error)
}

// HandleListEvents returns an HTTP handler for the event listing.
func HandleListEvents(svc EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		events, err := svc.ListEvents(r.Context(), userID)
		if err != nil {
			switch err {
			case domain.ErrAuthRequired:
				writeError(w, http.StatusUnauthorized, codeAuthRequired, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			default:
				writeUnexpected(w, err)
			}
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, newEventResponse(event))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleEventRoutes dispatches the /events/{id} subtree: the event detail,
// its registrations, and the caller's ticket.
func HandleEventRoutes(catalog EventReader, registrar Registrar, tickets TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "events" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		eventID := parts[1]

		switch {
		case len(parts) == 2:
			serveGetEvent(w, r, catalog, eventID)
		case len(parts) == 3 && parts[2] == "registrations":
			serveRegister(w, r, registrar, eventID)
		case len(parts) == 3 && parts[2] == "ticket":
			serveIssueTicket(w, r, tickets, eventID)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func serveGetEvent(w http.ResponseWriter, r *http.Request, svc EventReader, eventID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	event, err := svc.GetEvent(r.Context(), eventID, userID)
	if err != nil {
		switch err {
		case domain.ErrAuthRequired:
			writeError(w, http.StatusUnauthorized, codeAuthRequired, err.Error())
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		default:
			writeUnexpected(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newEventResponse(event))
}

type eventResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	IsVirtual       bool      `json:"is_virtual"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	CapacityLimit   int       `json:"capacity_limit"`
	RegisteredCount int       `json:"registered_count"`
	AvailableSlots  *int      `json:"available_slots,omitempty"`
	Going           bool      `json:"going"`
}

func newEventResponse(s domain.EventSummary) eventResponse {
	resp := eventResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Location:        s.Location,
		IsVirtual:       s.IsVirtual,
		StartsAt:        s.StartsAt,
		EndsAt:          s.EndsAt,
		CapacityLimit:   s.CapacityLimit,
		RegisteredCount: s.RegisteredCount,
		Going:           s.Going,
	}
	if !s.Unlimited() {
		slots := s.AvailableSlots()
		resp.AvailableSlots = &slots
	}
	return resp
}
