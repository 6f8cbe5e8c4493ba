package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-match/internal/domain/sessions"
)

type sessionsStore struct {
	mu   sync.RWMutex
	byID map[string][]byte
}

// NewSessionsStore crea el store en memoria. Guarda el payload ya
// serializado (igual que los backends durables) para que el store
// nunca comparta estado mutable con la máquina de estados.
func NewSessionsStore() sessions.Store {
	return &sessionsStore{
		byID: make(map[string][]byte),
	}
}

func (r *sessionsStore) Save(ctx context.Context, s sessions.AdoptionSession) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Sobrescribe por id: Save es idempotente.
	r.byID[s.ID] = payload
	return nil
}

func (r *sessionsStore) Load(ctx context.Context, id string) (sessions.AdoptionSession, error) {
	r.mu.RLock()
	payload, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return sessions.AdoptionSession{}, sessions.ErrSessionNotFound
	}

	var s sessions.AdoptionSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return sessions.AdoptionSession{}, err
	}
	return s, nil
}

func (r *sessionsStore) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}

	// Orden estable para salida reproducible.
	sort.Strings(out)
	return out, nil
}
