package app

import (
	"context"

	"github.com/marvinjameserosa/db-event-reg-system/internal/clock"
	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// RegistrationRepository is the storage surface the admission ledger needs.
type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) error
}

// RegistrationService is the only writer of an event's registrant set. It
// enforces the capacity ceiling under concurrent registration attempts.
type RegistrationService struct {
	repo  RegistrationRepository
	clock clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:  repo,
		clock: clk,
	}
}

// Register admits userID into eventID. The event row lock serializes all
// registrations for one event, so the membership check, the registrant count
// and the insert commit as a unit: at the capacity boundary only the
// remaining number of concurrent callers can succeed.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) (domain.Registration, error) {
	if userID == "" {
		return domain.Registration{}, domain.ErrAuthRequired
	}
	if eventID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Registration

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		existing, err := s.repo.GetRegistration(txCtx, eventID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyRegistered
		}

		if !event.Unlimited() {
			count, err := s.repo.CountRegistrations(txCtx, eventID)
			if err != nil {
				return err
			}
			if count >= event.CapacityLimit {
				return domain.ErrCapacityExceeded
			}
		}

		reg := domain.Registration{
			EventID:      eventID,
			UserID:       userID,
			Used:         false,
			RegisteredAt: now,
		}
		if err := s.repo.CreateRegistration(txCtx, reg); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return domain.Registration{}, err
	}

	return result, nil
}
