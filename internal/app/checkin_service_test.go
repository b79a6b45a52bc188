package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/clock"
	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

const (
	scanEventID = "6f1b3a0e-9a3f-4a1e-8a43-0c2b8b9c1a11"
	scanUserID  = "2b6d9f44-1e17-4c52-9f0a-7d1e2c3b4a55"
)

func scanPayload(t *testing.T) string {
	t.Helper()
	payload, err := domain.Ticket{EventID: scanEventID, UserID: scanUserID}.Encode()
	if err != nil {
		t.Fatalf("encode ticket: %v", err)
	}
	return payload
}

func TestCheckInService_CheckIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)

	t.Run("consumes an unused ticket once", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedger(
			nil,
			[]string{scanUserID},
			[]domain.Registration{{EventID: scanEventID, UserID: scanUserID}},
		)
		svc := NewCheckInService(repo, clock.NewFixed(now))

		res, err := svc.CheckIn(context.Background(), scanPayload(t))
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if res.UsedAt != now {
			t.Fatalf("expected used_at %v, got %v", now, res.UsedAt)
		}

		reg, ok := repo.registration(scanEventID, scanUserID)
		if !ok || !reg.Used {
			t.Fatalf("expected registration marked used, got %+v", reg)
		}
		if reg.UsedAt == nil || *reg.UsedAt != now {
			t.Fatalf("expected used_at recorded at %v, got %+v", now, reg.UsedAt)
		}

		if _, err := svc.CheckIn(context.Background(), scanPayload(t)); err != domain.ErrTicketAlreadyUsed {
			t.Fatalf("expected ErrTicketAlreadyUsed on repeat scan, got %v", err)
		}
	})

	t.Run("malformed payload mutates nothing", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedger(
			nil,
			[]string{scanUserID},
			[]domain.Registration{{EventID: scanEventID, UserID: scanUserID}},
		)
		svc := NewCheckInService(repo, clock.NewFixed(now))

		if _, err := svc.CheckIn(context.Background(), "not json"); err != domain.ErrMalformedTicket {
			t.Fatalf("expected ErrMalformedTicket, got %v", err)
		}
		if reg, _ := repo.registration(scanEventID, scanUserID); reg.Used {
			t.Fatalf("expected ticket state unchanged after malformed scan")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedger(nil, nil, nil)
		svc := NewCheckInService(repo, clock.NewFixed(now))

		if _, err := svc.CheckIn(context.Background(), scanPayload(t)); err != domain.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("user exists but never registered", func(t *testing.T) {
		t.Parallel()
		repo := newFakeLedger(nil, []string{scanUserID}, nil)
		svc := NewCheckInService(repo, clock.NewFixed(now))

		if _, err := svc.CheckIn(context.Background(), scanPayload(t)); err != domain.ErrNotRegisteredForEvent {
			t.Fatalf("expected ErrNotRegisteredForEvent, got %v", err)
		}
	})

	t.Run("used ticket stays used", func(t *testing.T) {
		t.Parallel()
		usedAt := now.Add(-time.Hour)
		repo := newFakeLedger(
			nil,
			[]string{scanUserID},
			[]domain.Registration{{EventID: scanEventID, UserID: scanUserID, Used: true, UsedAt: &usedAt}},
		)
		svc := NewCheckInService(repo, clock.NewFixed(now))

		if _, err := svc.CheckIn(context.Background(), scanPayload(t)); err != domain.ErrTicketAlreadyUsed {
			t.Fatalf("expected ErrTicketAlreadyUsed, got %v", err)
		}
		reg, _ := repo.registration(scanEventID, scanUserID)
		if reg.UsedAt == nil || *reg.UsedAt != usedAt {
			t.Fatalf("expected original used_at preserved, got %+v", reg.UsedAt)
		}
	})
}

func TestCheckInService_ExactlyOnceUnderConcurrency(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)
	repo := newFakeLedger(
		nil,
		[]string{scanUserID},
		[]domain.Registration{{EventID: scanEventID, UserID: scanUserID}},
	)
	svc := NewCheckInService(repo, clock.NewFixed(now))
	payload := scanPayload(t)

	const scans = 10
	results := make([]error, scans)

	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CheckIn(context.Background(), payload)
		}(i)
	}
	wg.Wait()

	success, alreadyUsed := 0, 0
	for _, err := range results {
		switch err {
		case nil:
			success++
		case domain.ErrTicketAlreadyUsed:
			alreadyUsed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 || alreadyUsed != scans-1 {
		t.Fatalf("expected exactly one admission, got %d successes and %d already-used", success, alreadyUsed)
	}

	reg, _ := repo.registration(scanEventID, scanUserID)
	if !reg.Used {
		t.Fatalf("expected final state used")
	}
}
