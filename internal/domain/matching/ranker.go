package matching

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"shelter-match/internal/domain/adopters"
	"shelter-match/internal/domain/catalog"
	"shelter-match/internal/platform/metrics"
)

// Rank aplica el scorer sobre el set de candidatos y devuelve los
// resultados ordenados (mejor primero). Los no disponibles se excluyen
// en silencio antes de puntuar; los registros que no pasan la
// validación del scorer se saltan con warning. Ninguno de los dos
// casos es un error: quedan contados en RankStats.
//
// Orden: score desc; empate: sin risk flag primero, luego animal id
// ascendente. El desempate es determinista para que la corrida sea
// reproducible.
func (s *Scorer) Rank(adopter adopters.Profile, candidates []catalog.AnimalRecord) ([]MatchResult, RankStats, error) {
	stats := RankStats{Candidates: len(candidates)}

	// Un perfil inválido es error del caller, no un skip silencioso.
	if err := adopter.Validate(); err != nil {
		return nil, stats, fmt.Errorf("%w: adopter %s: %v", ErrInvalidInput, adopter.ID, err)
	}

	results := make([]MatchResult, 0, len(candidates))
	for _, animal := range candidates {
		if animal.AdoptionStatus != catalog.StatusAvailable {
			stats.Unavailable++
			metrics.CandidatesUnavailable.Inc()
			continue
		}

		res, err := s.Score(adopter, animal)
		if err != nil {
			if !errors.Is(err, ErrInvalidInput) {
				return nil, stats, err
			}
			stats.Malformed++
			metrics.CandidatesMalformed.Inc()
			if s.log != nil {
				s.log.Warn("excluding malformed candidate from ranking",
					zap.String("animal_id", animal.ID),
					zap.Error(err),
				)
			}
			continue
		}

		results = append(results, res)
	}
	stats.Scored = len(results)

	sortResults(results)

	if s.log != nil {
		s.log.Info("ranking completed",
			zap.String("adopter_id", adopter.ID),
			zap.Int("candidates", stats.Candidates),
			zap.Int("unavailable", stats.Unavailable),
			zap.Int("malformed", stats.Malformed),
			zap.Int("scored", stats.Scored),
		)
	}

	return results, stats, nil
}

func sortResults(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].RiskFlag != results[j].RiskFlag {
			return !results[i].RiskFlag
		}
		return results[i].AnimalID < results[j].AnimalID
	})
}
