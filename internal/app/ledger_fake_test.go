package app

import (
	"context"
	"sync"
	"time"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// fakeLedger backs the service tests in-memory. WithTx holds the mutex for
// the whole closure, mirroring the per-event row lock the real repository
// takes, so the concurrency tests exercise genuine mutual exclusion.
type fakeLedger struct {
	mu     sync.Mutex
	events map[string]domain.Event
	users  map[string]bool
	regs   map[string]domain.Registration
}

type fakeTxKey struct{}

func newFakeLedger(events []domain.Event, users []string, regs []domain.Registration) *fakeLedger {
	f := &fakeLedger{
		events: make(map[string]domain.Event),
		users:  make(map[string]bool),
		regs:   make(map[string]domain.Registration),
	}
	for _, e := range events {
		f.events[e.ID] = e
	}
	for _, u := range users {
		f.users[u] = true
	}
	for _, r := range regs {
		f.regs[regKey(r.EventID, r.UserID)] = r
	}
	return f
}

func regKey(eventID, userID string) string {
	return eventID + "|" + userID
}

func (f *fakeLedger) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(context.WithValue(ctx, fakeTxKey{}, true))
}

func (f *fakeLedger) lock(ctx context.Context) func() {
	if ctx.Value(fakeTxKey{}) != nil {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

func (f *fakeLedger) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	defer f.lock(ctx)()
	event, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeLedger) GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	defer f.lock(ctx)()
	reg, ok := f.regs[regKey(eventID, userID)]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

func (f *fakeLedger) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	defer f.lock(ctx)()
	count := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	defer f.lock(ctx)()
	key := regKey(reg.EventID, reg.UserID)
	if _, ok := f.regs[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	f.regs[key] = reg
	return nil
}

func (f *fakeLedger) ConsumeTicket(ctx context.Context, eventID, userID string, usedAt time.Time) (bool, error) {
	defer f.lock(ctx)()
	key := regKey(eventID, userID)
	reg, ok := f.regs[key]
	if !ok || reg.Used {
		return false, nil
	}
	reg.Used = true
	reg.UsedAt = &usedAt
	f.regs[key] = reg
	return true, nil
}

func (f *fakeLedger) UserExists(ctx context.Context, userID string) (bool, error) {
	defer f.lock(ctx)()
	return f.users[userID], nil
}

func (f *fakeLedger) registrationCount(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count
}

func (f *fakeLedger) registration(eventID, userID string) (domain.Registration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reg, ok := f.regs[regKey(eventID, userID)]
	return reg, ok
}
