package memory

import (
	"context"
	"errors"
	"sync"

	"shelter-match/internal/domain/journal"
)

type journalRepo struct {
	mu       sync.RWMutex
	bySessID map[string][]journal.SessionEvent
}

func NewJournalRepo() journal.Repository {
	return &journalRepo{
		bySessID: make(map[string][]journal.SessionEvent),
	}
}

func (r *journalRepo) Append(ctx context.Context, e journal.SessionEvent) error {
	if e.ID == "" || e.SessionID == "" {
		return errors.New("event id and session id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySessID[e.SessionID] = append(r.bySessID[e.SessionID], e)
	return nil
}

func (r *journalRepo) ListBySession(ctx context.Context, sessionID string) ([]journal.SessionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.bySessID[sessionID]
	out := make([]journal.SessionEvent, len(events))
	copy(out, events)
	return out, nil
}
