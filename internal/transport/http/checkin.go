package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/app"
	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// TicketChecker is the minimal interface needed to consume a scanned ticket.
type TicketChecker interface {
	CheckIn(ctx context.Context, payload string) (app.CheckInResult, error)
}

// HandleCheckIn returns an HTTP handler consuming decoded QR payloads. The
// camera and symbol decode happen in the staff client; this endpoint receives
// the decoded text only.
func HandleCheckIn(svc TicketChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if _, ok := callerID(w, r); !ok {
			return
		}

		var req checkInRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.CheckIn(r.Context(), req.Payload)
		if err != nil {
			switch err {
			case domain.ErrMalformedTicket:
				writeError(w, http.StatusBadRequest, codeMalformedTicket, err.Error())
			case domain.ErrUserNotFound:
				writeError(w, http.StatusNotFound, codeUserNotFound, err.Error())
			case domain.ErrNotRegisteredForEvent:
				writeError(w, http.StatusNotFound, codeNotRegisteredForEvent, err.Error())
			case domain.ErrTicketAlreadyUsed:
				writeError(w, http.StatusConflict, codeTicketAlreadyUsed, err.Error())
			default:
				writeUnexpected(w, err)
			}
			return
		}

		resp := checkInResponse{
			Status:  "checked_in",
			EventID: res.Ticket.EventID,
			UserID:  res.Ticket.UserID,
			UsedAt:  res.UsedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type checkInRequest struct {
	Payload string `json:"payload"`
}

type checkInResponse struct {
	Status  string    `json:"status"`
	EventID string    `json:"event_id"`
	UserID  string    `json:"user_id"`
	UsedAt  time.Time `json:"used_at"`
}
