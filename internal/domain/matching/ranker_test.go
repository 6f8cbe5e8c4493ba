package matching

import (
	"errors"
	"testing"

	"shelter-match/internal/domain/catalog"
)

func TestRank_ExcludesUnavailableCandidates(t *testing.T) {
	s := NewScorer(nil)

	available := validAnimal()
	pending := validAnimal()
	pending.ID = "animal-2"
	pending.AdoptionStatus = catalog.StatusPending
	adopted := validAnimal()
	adopted.ID = "animal-3"
	adopted.AdoptionStatus = catalog.StatusAdopted

	results, stats, err := s.Rank(validAdopter(), []catalog.AnimalRecord{available, pending, adopted})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}

	if len(results) != 1 || results[0].AnimalID != "animal-1" {
		t.Fatalf("expected only the available animal, got %v", results)
	}
	if stats.Unavailable != 2 || stats.Scored != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRank_EmptyAfterFilteringIsNotAnError(t *testing.T) {
	s := NewScorer(nil)

	pending := validAnimal()
	pending.AdoptionStatus = catalog.StatusPending

	results, stats, err := s.Rank(validAdopter(), []catalog.AnimalRecord{pending})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty ranking, got %v", results)
	}
	if stats.Unavailable != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	results, _, err = s.Rank(validAdopter(), nil)
	if err != nil || len(results) != 0 {
		t.Fatalf("expected empty ranking for empty input, got %v / %v", results, err)
	}
}

func TestRank_SkipsMalformedCandidatesWithCount(t *testing.T) {
	s := NewScorer(nil)

	ok := validAnimal()
	broken := validAnimal()
	broken.ID = "animal-2"
	broken.EnergyLevel = "" // atributo obligatorio ausente

	results, stats, err := s.Rank(validAdopter(), []catalog.AnimalRecord{ok, broken})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if len(results) != 1 || results[0].AnimalID != "animal-1" {
		t.Fatalf("expected the malformed candidate skipped, got %v", results)
	}
	if stats.Malformed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	s := NewScorer(nil)

	strong := validAnimal() // score 100 para validAdopter
	weak := validAnimal()
	weak.ID = "animal-0" // id menor, pero score más bajo
	weak.EnergyLevel = catalog.EnergyLow

	results, _, err := s.Rank(validAdopter(), []catalog.AnimalRecord{weak, strong})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].AnimalID != "animal-1" || results[1].AnimalID != "animal-0" {
		t.Fatalf("expected score ordering to win over id, got %v then %v",
			results[0].AnimalID, results[1].AnimalID)
	}
	if results[0].Score <= results[1].Score {
		t.Fatalf("ranking not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

func TestRank_TieBreaksByAnimalID(t *testing.T) {
	s := NewScorer(nil)

	b := validAnimal()
	b.ID = "animal-b"
	a := validAnimal()
	a.ID = "animal-a"

	// Mismo score, mismo risk flag: gana el id lexicográficamente menor.
	results, _, err := s.Rank(validAdopter(), []catalog.AnimalRecord{b, a})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if results[0].AnimalID != "animal-a" || results[1].AnimalID != "animal-b" {
		t.Fatalf("expected deterministic id tie-break, got %v then %v",
			results[0].AnimalID, results[1].AnimalID)
	}

	// Y es reproducible con el orden de entrada invertido.
	again, _, err := s.Rank(validAdopter(), []catalog.AnimalRecord{a, b})
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if again[0].AnimalID != results[0].AnimalID || again[1].AnimalID != results[1].AnimalID {
		t.Fatalf("ranking depends on input order: %v vs %v", again, results)
	}
}

func TestRank_RiskTieBreakBeforeID(t *testing.T) {
	// Mismo aggregate: el resultado con risk flag va después aunque
	// su id sea menor.
	clean := MatchResult{AnimalID: "z", Score: 85}
	risky := MatchResult{AnimalID: "a", Score: 85, RiskFlag: true}

	results := []MatchResult{risky, clean}
	sortResults(results)

	if results[0].AnimalID != "z" || results[1].AnimalID != "a" {
		t.Fatalf("expected risk-free result first on equal score, got %v then %v",
			results[0].AnimalID, results[1].AnimalID)
	}
}

func TestRank_InvalidAdopterIsAnError(t *testing.T) {
	s := NewScorer(nil)

	adopter := validAdopter()
	adopter.ExperienceLevel = ""

	if _, _, err := s.Rank(adopter, []catalog.AnimalRecord{validAnimal()}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for invalid adopter, got %v", err)
	}
}
