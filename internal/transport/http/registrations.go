package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// Registrar is the minimal interface needed to register for an event.
type Registrar interface {
	Register(ctx context.Context, eventID, userID string) (domain.Registration, error)
}

func serveRegister(w http.ResponseWriter, r *http.Request, svc Registrar, eventID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	reg, err := svc.Register(r.Context(), eventID, userID)
	if err != nil {
		switch err {
		case domain.ErrAuthRequired:
			writeError(w, http.StatusUnauthorized, codeAuthRequired, err.Error())
		case domain.ErrInvalidID:
			writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
		case domain.ErrEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
		case domain.ErrAlreadyRegistered:
			writeError(w, http.StatusConflict, codeAlreadyRegistered, err.Error())
		case domain.ErrCapacityExceeded:
			writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
		default:
			writeUnexpected(w, err)
		}
		return
	}

	resp := registrationResponse{
		EventID:      reg.EventID,
		UserID:       reg.UserID,
		State:        string(reg.State()),
		RegisteredAt: reg.RegisteredAt,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

type registrationResponse struct {
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	State        string    `json:"state"`
	RegisteredAt time.Time `json:"registered_at"`
}
