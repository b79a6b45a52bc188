package app

import (
	"context"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// TicketRepository is the minimal read surface for ticket issuance.
type TicketRepository interface {
	GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error)
}

// TicketService materializes the check-in token for an existing registration.
// It never writes: the registration row is the ticket's source of truth.
type TicketService struct {
	repo TicketRepository
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{repo: repo}
}

// Issue returns the ticket for (eventID, userID). Repeated calls return an
// equivalent ticket, and a used registration still yields its token: usage is
// judged at check-in, not at issuance.
func (s *TicketService) Issue(ctx context.Context, eventID, userID string) (domain.Ticket, error) {
	if userID == "" {
		return domain.Ticket{}, domain.ErrAuthRequired
	}
	if eventID == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}

	reg, err := s.repo.GetRegistration(ctx, eventID, userID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if reg == nil {
		return domain.Ticket{}, domain.ErrNotRegistered
	}

	return domain.Ticket{EventID: reg.EventID, UserID: reg.UserID}, nil
}
