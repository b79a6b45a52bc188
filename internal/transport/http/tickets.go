package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// TicketIssuer is the minimal interface needed to materialize a ticket.
type TicketIssuer interface {
	Issue(ctx context.Context, eventID, userID string) (domain.Ticket, error)
}

func serveIssueTicket(w http.ResponseWriter, r *http.Request, svc TicketIssuer, eventID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	ticket, err := svc.Issue(r.Context(), eventID, userID)
	if err != nil {
		switch err {
		case domain.ErrAuthRequired:
			writeError(w, http.StatusUnauthorized, codeAuthRequired, err.Error())
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrNotRegistered:
			writeError(w, http.StatusNotFound, codeNotRegistered, err.Error())
		default:
			writeUnexpected(w, err)
		}
		return
	}

	payload, err := ticket.Encode()
	if err != nil {
		writeUnexpected(w, err)
		return
	}

	resp := ticketResponse{
		EventID: ticket.EventID,
		UserID:  ticket.UserID,
		Payload: payload,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type ticketResponse struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	// Payload is the exact text rendered into the QR symbol.
	Payload string `json:"payload"`
}
