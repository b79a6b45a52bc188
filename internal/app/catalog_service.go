package app

import (
	"context"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// CatalogRepository is the read surface for the discovery pages.
type CatalogRepository interface {
	ListEvents(ctx context.Context, userID string) ([]domain.EventSummary, error)
	GetEvent(ctx context.Context, eventID, userID string) (*domain.EventSummary, error)
}

// CatalogService serves read-only event listings enriched with attendance
// counts and the caller's own registration state. Event writes belong to the
// catalog collaborator, not to this service.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListEvents(ctx context.Context, userID string) ([]domain.EventSummary, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	return s.repo.ListEvents(ctx, userID)
}

func (s *CatalogService) GetEvent(ctx context.Context, eventID, userID string) (domain.EventSummary, error) {
	if userID == "" {
		return domain.EventSummary{}, domain.ErrAuthRequired
	}
	if eventID == "" {
		return domain.EventSummary{}, domain.ErrInvalidID
	}

	summary, err := s.repo.GetEvent(ctx, eventID, userID)
	if err != nil {
		return domain.EventSummary{}, err
	}
	if summary == nil {
		return domain.EventSummary{}, domain.ErrEventNotFound
	}
	return *summary, nil
}
