package app

import (
	"context"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/clock"
	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// CheckInRepository is the storage surface for ticket consumption.
type CheckInRepository interface {
	// ConsumeTicket flips the ticket from unused to used iff it is currently
	// unused, reporting whether this call made the transition.
	ConsumeTicket(ctx context.Context, eventID, userID string, usedAt time.Time) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error)
}

// CheckInService consumes scanned ticket payloads. It owns the unused-to-used
// transition; the transition is never reversed.
type CheckInService struct {
	repo  CheckInRepository
	clock clock.Clock
}

func NewCheckInService(repo CheckInRepository, clk clock.Clock) *CheckInService {
	return &CheckInService{
		repo:  repo,
		clock: clk,
	}
}

// CheckInResult reports a successful admission.
type CheckInResult struct {
	Ticket domain.Ticket
	UsedAt time.Time
}

// CheckIn parses a decoded scan payload and consumes the ticket it names.
// The transition is a single compare-and-set: when the same ticket is
// presented concurrently, exactly one scan succeeds and every other one
// observes the committed used state and reports ErrTicketAlreadyUsed.
func (s *CheckInService) CheckIn(ctx context.Context, payload string) (CheckInResult, error) {
	ticket, err := domain.ParseTicket(payload)
	if err != nil {
		return CheckInResult{}, err
	}

	now := s.clock.Now()
	consumed, err := s.repo.ConsumeTicket(ctx, ticket.EventID, ticket.UserID, now)
	if err != nil {
		return CheckInResult{}, err
	}
	if consumed {
		return CheckInResult{Ticket: ticket, UsedAt: now}, nil
	}

	// The conditional write missed. Diagnose why with read-only lookups,
	// in the same order the scanner surfaces failures to staff.
	exists, err := s.repo.UserExists(ctx, ticket.UserID)
	if err != nil {
		return CheckInResult{}, err
	}
	if !exists {
		return CheckInResult{}, domain.ErrUserNotFound
	}

	reg, err := s.repo.GetRegistration(ctx, ticket.EventID, ticket.UserID)
	if err != nil {
		return CheckInResult{}, err
	}
	if reg == nil {
		return CheckInResult{}, domain.ErrNotRegisteredForEvent
	}

	return CheckInResult{}, domain.ErrTicketAlreadyUsed
}
