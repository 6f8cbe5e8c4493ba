package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-match/internal/domain/catalog"
)

type catalogRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.AnimalRecord
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{
		byID: make(map[string]catalog.AnimalRecord),
	}
}

func (r *catalogRepo) Upsert(ctx context.Context, a catalog.AnimalRecord) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = a
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (catalog.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return catalog.AnimalRecord{}, catalog.ErrNotFound
	}
	return a, nil
}

func (r *catalogRepo) List(ctx context.Context) ([]catalog.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.AnimalRecord, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// Orden estable por id (el ranking re-ordena, pero la corrida
	// debe ser reproducible desde la entrada).
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
