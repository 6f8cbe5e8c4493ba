package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"shelter-match/internal/domain/adopters"
	"shelter-match/internal/domain/catalog"
	"shelter-match/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid scoring input")
)

const (
	neutralRaw = 50 // sub-score para categorías no reconocidas

	// Umbral de horas/día según necesidades del animal.
	hoursNeededSpecial = 4.0
	hoursNeededRegular = 1.0
)

// highDriveBreeds marca razas que exigen más experiencia.
// Heurística por substring sobre el breed en minúsculas.
var highDriveBreeds = []string{
	"shepherd",
	"husky",
	"malinois",
	"pit bull",
	"pitbull",
	"akita",
	"cattle dog",
}

// Scorer calcula compatibilidad entre adoptante y animal.
// El cálculo es puro; el logger solo emite los fallbacks (one-way).
type Scorer struct {
	log *zap.Logger
	now func() time.Time
}

func NewScorer(log *zap.Logger) *Scorer {
	return &Scorer{
		log: log,
		now: time.Now,
	}
}

// Score computa el desglose de 5 factores y el agregado ponderado.
// Falla con ErrInvalidInput si falta un atributo obligatorio; valores
// fuera de la enumeración NUNCA fallan: caen al sub-score neutral 50
// con warning.
func (s *Scorer) Score(adopter adopters.Profile, animal catalog.AnimalRecord) (MatchResult, error) {
	if err := adopter.Validate(); err != nil {
		return MatchResult{}, fmt.Errorf("%w: adopter %s: %v", ErrInvalidInput, adopter.ID, err)
	}
	if err := validateAnimalForScoring(animal); err != nil {
		return MatchResult{}, err
	}

	raws := map[Factor]int{
		FactorEnergy:       s.scoreEnergy(adopter, animal),
		FactorExperience:   s.scoreExperience(adopter, animal),
		FactorHome:         s.scoreHome(adopter, animal),
		FactorChildSafety:  s.scoreChildSafety(adopter, animal),
		FactorAvailability: s.scoreAvailability(adopter, animal),
	}

	factors := make([]FactorScore, 0, len(factorOrder))
	aggregate := 0.0
	for _, f := range factorOrder {
		w := Weights[f]
		contribution := float64(raws[f]) * w
		aggregate += contribution
		factors = append(factors, FactorScore{
			Factor:       f,
			Raw:          raws[f],
			Weight:       w,
			Contribution: round2(contribution),
		})
	}
	aggregate = round2(aggregate)

	riskFlag, reasons := assessRisk(adopter, animal, raws, aggregate)

	return MatchResult{
		AdopterID:   adopter.ID,
		AnimalID:    animal.ID,
		Score:       aggregate,
		Factors:     factors,
		RiskFlag:    riskFlag,
		RiskReasons: reasons,
		ComputedAt:  s.now().UTC(),
	}, nil
}

// scoreEnergy compara actividad del hogar vs energía del animal
// en la grilla ordinal 3x3: igual=100, un paso=60, dos pasos=20.
func (s *Scorer) scoreEnergy(adopter adopters.Profile, animal catalog.AnimalRecord) int {
	animalLevel := animal.EnergyLevel.Ordinal()
	if animalLevel == 0 {
		s.fallback(FactorEnergy, "energy_level", string(animal.EnergyLevel), animal.ID)
		return neutralRaw
	}

	switch diff(adopter.ActivityLevel.Ordinal(), animalLevel) {
	case 0:
		return 100
	case 1:
		return 60
	default:
		return 20
	}
}

// scoreExperience compara experiencia vs dificultad implícita del animal
// (special needs, raza exigente, cachorro). Igual o superior=100,
// un nivel corto=50, dos niveles=10.
func (s *Scorer) scoreExperience(adopter adopters.Profile, animal catalog.AnimalRecord) int {
	gap := impliedDifficulty(animal) - adopter.ExperienceLevel.Ordinal()
	switch {
	case gap <= 0:
		return 100
	case gap == 1:
		return 50
	default:
		return 10
	}
}

func (s *Scorer) scoreHome(adopter adopters.Profile, animal catalog.AnimalRecord) int {
	space := animal.SpaceRequirement

	switch adopter.HomeEnvironment {
	case adopters.HomeFarm:
		return 100
	case adopters.HomeHouseWithYard:
		switch space {
		case catalog.SpaceSmall:
			return 90
		case catalog.SpaceMedium:
			return 100
		case catalog.SpaceLarge:
			return 80
		}
	case adopters.HomeApartment:
		switch space {
		case catalog.SpaceSmall:
			return 100
		case catalog.SpaceMedium:
			return 60
		case catalog.SpaceLarge:
			return 20
		}
	}

	s.fallback(FactorHome, "space_requirement", string(space), animal.ID)
	return neutralRaw
}

// scoreChildSafety es neutral (100) si no hay niños en el hogar.
func (s *Scorer) scoreChildSafety(adopter adopters.Profile, animal catalog.AnimalRecord) int {
	if !adopter.HasChildren {
		return 100
	}

	switch animal.GoodWithChildren {
	case catalog.ChildCompatYes:
		return 100
	case catalog.ChildCompatUnknown, "":
		return 60
	case catalog.ChildCompatNo:
		return 0
	default:
		s.fallback(FactorChildSafety, "good_with_children", string(animal.GoodWithChildren), animal.ID)
		return neutralRaw
	}
}

func (s *Scorer) scoreAvailability(adopter adopters.Profile, animal catalog.AnimalRecord) int {
	needed := hoursNeededRegular
	if animal.SpecialNeeds {
		needed = hoursNeededSpecial
	}

	hours := adopter.TimeAvailabilityHours
	switch {
	case hours >= needed:
		return 100
	case hours >= needed/2:
		return 60
	default:
		return 20
	}
}

// assessRisk arma el risk flag y sus razones en orden de severidad:
// factores en cero primero, luego shortfalls que hunden el agregado,
// y al final el umbral global.
func assessRisk(adopter adopters.Profile, animal catalog.AnimalRecord, raws map[Factor]int, aggregate float64) (bool, []string) {
	childConcern := raws[FactorChildSafety] < 40
	hasZero := false
	for _, f := range factorOrder {
		if raws[f] == 0 {
			hasZero = true
			break
		}
	}
	lowAggregate := aggregate < 50

	if !childConcern && !hasZero && !lowAggregate {
		return false, nil
	}

	reasons := make([]string, 0, 4)

	// Fallos duros (factor en cero) primero.
	for _, f := range factorOrder {
		if raws[f] != 0 {
			continue
		}
		if f == FactorChildSafety {
			reasons = append(reasons, "child safety concern")
			continue
		}
		reasons = append(reasons, fmt.Sprintf("%s factor scored zero", f))
	}

	if childConcern && raws[FactorChildSafety] != 0 {
		reasons = append(reasons, "child safety concern")
	}

	if lowAggregate {
		reasons = append(reasons, shortfallReasons(adopter, animal, raws)...)
		reasons = append(reasons, "low overall compatibility")
	}

	return true, reasons
}

// shortfallReasons nombra los factores (<=20) que explican un
// agregado bajo, para que el resultado sea accionable.
func shortfallReasons(adopter adopters.Profile, animal catalog.AnimalRecord, raws map[Factor]int) []string {
	out := make([]string, 0, 3)
	for _, f := range factorOrder {
		raw := raws[f]
		if raw == 0 || raw > 20 {
			continue
		}
		switch f {
		case FactorEnergy:
			out = append(out, fmt.Sprintf("energy mismatch: %s activity household vs %s energy animal",
				adopter.ActivityLevel, animal.EnergyLevel))
		case FactorExperience:
			out = append(out, "experience gap: animal needs a more experienced adopter")
		case FactorHome:
			out = append(out, fmt.Sprintf("space mismatch: %s home vs %s space requirement",
				adopter.HomeEnvironment, animal.SpaceRequirement))
		case FactorAvailability:
			needed := hoursNeededRegular
			if animal.SpecialNeeds {
				needed = hoursNeededSpecial
			}
			out = append(out, fmt.Sprintf("availability shortfall: needs at least %.0fh/day, adopter has %.1fh",
				needed, adopter.TimeAvailabilityHours))
		}
	}
	return out
}

// impliedDifficulty deriva 1..3: base 1, +1 por special needs,
// +1 por raza exigente, +1 por cachorro (<12 meses), con tope 3.
func impliedDifficulty(animal catalog.AnimalRecord) int {
	level := 1
	if animal.SpecialNeeds {
		level++
	}
	if isHighDriveBreed(animal.Breed) {
		level++
	}
	if animal.AgeMonths < 12 {
		level++
	}
	if level > 3 {
		level = 3
	}
	return level
}

func isHighDriveBreed(breed string) bool {
	b := strings.ToLower(strings.ReplaceAll(breed, "_", " "))
	for _, marker := range highDriveBreeds {
		if strings.Contains(b, marker) {
			return true
		}
	}
	return false
}

func validateAnimalForScoring(animal catalog.AnimalRecord) error {
	if strings.TrimSpace(animal.ID) == "" {
		return fmt.Errorf("%w: animal id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(string(animal.EnergyLevel)) == "" {
		return fmt.Errorf("%w: animal %s: energy_level is required", ErrInvalidInput, animal.ID)
	}
	if strings.TrimSpace(string(animal.SpaceRequirement)) == "" {
		return fmt.Errorf("%w: animal %s: space_requirement is required", ErrInvalidInput, animal.ID)
	}
	if animal.AgeMonths < 0 {
		return fmt.Errorf("%w: animal %s: age_months must be >= 0", ErrInvalidInput, animal.ID)
	}
	return nil
}

func (s *Scorer) fallback(f Factor, field, value, animalID string) {
	metrics.FactorFallbacks.WithLabelValues(string(f)).Inc()
	if s.log != nil {
		s.log.Warn("unrecognized category, using neutral sub-score",
			zap.String("factor", string(f)),
			zap.String("field", field),
			zap.String("value", value),
			zap.String("animal_id", animalID),
		)
	}
}

func diff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
