package catalog

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]AnimalRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]AnimalRecord{}}
}

func (r *testRepo) Upsert(ctx context.Context, a AnimalRecord) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (AnimalRecord, error) {
	a, ok := r.byID[id]
	if !ok {
		return AnimalRecord{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]AnimalRecord, error) {
	out := make([]AnimalRecord, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func validRecord(id string) AnimalRecord {
	return AnimalRecord{
		ID:               id,
		Name:             "Milo",
		Species:          SpeciesDog,
		Breed:            "beagle",
		EnergyLevel:      EnergyModerate,
		AgeMonths:        24,
		GoodWithChildren: ChildCompatYes,
		SpaceRequirement: SpaceSmall,
		AdoptionStatus:   StatusAvailable,
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Ingest_SkipsMalformedWithCount(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	noID := validRecord("")
	noSpecies := validRecord("animal-2")
	noSpecies.Species = ""
	negativeAge := validRecord("animal-3")
	negativeAge.AgeMonths = -1
	badStatus := validRecord("animal-4")
	badStatus.AdoptionStatus = "lost"

	res, err := svc.Ingest(context.Background(), []AnimalRecord{
		validRecord("animal-1"),
		noID,
		noSpecies,
		negativeAge,
		badStatus,
		validRecord("animal-5"),
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	if res.Accepted != 2 || res.Skipped != 4 {
		t.Fatalf("expected 2 accepted / 4 skipped, got %+v", res)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("expected only valid records stored, got %d", len(repo.byID))
	}
	if len(res.Reasons) != 4 {
		t.Fatalf("expected one reason per skip, got %v", res.Reasons)
	}
}

func TestService_Ingest_IsUpsert(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	first := validRecord("animal-1")
	if _, err := svc.Ingest(context.Background(), []AnimalRecord{first}); err != nil {
		t.Fatalf("Ingest #1 error: %v", err)
	}

	updated := first
	updated.AdoptionStatus = StatusAdopted
	if _, err := svc.Ingest(context.Background(), []AnimalRecord{updated}); err != nil {
		t.Fatalf("Ingest #2 error: %v", err)
	}

	got, err := svc.GetByID(context.Background(), "animal-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.AdoptionStatus != StatusAdopted {
		t.Fatalf("expected re-ingest to overwrite, got %+v", got)
	}
}

func TestService_ListAvailable_FiltersByStatus(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	available := validRecord("animal-1")
	pending := validRecord("animal-2")
	pending.AdoptionStatus = StatusPending
	adopted := validRecord("animal-3")
	adopted.AdoptionStatus = StatusAdopted

	if _, err := svc.Ingest(context.Background(), []AnimalRecord{available, pending, adopted}); err != nil {
		t.Fatalf("Ingest error: %v", err)
	}

	got, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "animal-1" {
		t.Fatalf("expected only available animals, got %v", got)
	}
}

func TestService_GetByID_Errors(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "  "); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for blank id, got %v", err)
	}
}
