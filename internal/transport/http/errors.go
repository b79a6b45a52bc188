package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeAuthRequired          = "auth_required"
	codeEventNotFound         = "event_not_found"
	codeAlreadyRegistered     = "already_registered"
	codeCapacityExceeded      = "capacity_exceeded"
	codeNotRegistered         = "not_registered"
	codeMalformedTicket       = "malformed_ticket"
	codeUserNotFound          = "user_not_found"
	codeNotRegisteredForEvent = "not_registered_for_event"
	codeTicketAlreadyUsed     = "ticket_already_used"
	codeForbidden             = "forbidden"
	codeStorageUnavailable    = "storage_unavailable"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeUnexpected maps service errors no handler claims: transient storage
// outages are retryable 503s, everything else is a 500.
func writeUnexpected(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		writeError(w, http.StatusServiceUnavailable, codeStorageUnavailable, "storage unavailable, retry the request")
		return
	}
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
