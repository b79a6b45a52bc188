package domain

import "errors"

var (
	ErrAuthRequired          = errors.New("authentication required")
	ErrEventNotFound         = errors.New("event not found")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrCapacityExceeded      = errors.New("no more slots available")
	ErrNotRegistered         = errors.New("not registered for this event")
	ErrMalformedTicket       = errors.New("malformed ticket payload")
	ErrUserNotFound          = errors.New("user not found")
	ErrNotRegisteredForEvent = errors.New("event not registered for this user")
	ErrTicketAlreadyUsed     = errors.New("ticket already used")
	ErrInvalidID             = errors.New("invalid id")
	// ErrStorageUnavailable marks transient storage failures. Nothing partial
	// is ever committed under it, so the whole operation is safe to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
