package matching

import "time"

// Factor identifica cada sub-score del desglose.
type Factor string

const (
	FactorEnergy       Factor = "energy_activity_match"
	FactorExperience   Factor = "experience_fit"
	FactorHome         Factor = "home_environment_fit"
	FactorChildSafety  Factor = "child_safety"
	FactorAvailability Factor = "availability_fit"
)

// factorOrder fija el orden del desglose y de los risk reasons.
var factorOrder = []Factor{
	FactorEnergy,
	FactorExperience,
	FactorHome,
	FactorChildSafety,
	FactorAvailability,
}

// Weights son los pesos fijos de cada factor. Deben sumar exactamente 1.0.
var Weights = map[Factor]float64{
	FactorEnergy:       0.30,
	FactorExperience:   0.25,
	FactorHome:         0.20,
	FactorChildSafety:  0.15,
	FactorAvailability: 0.10,
}

// FactorScore es un sub-score auditable: raw en [0,100],
// contribution = raw * weight.
type FactorScore struct {
	Factor       Factor  `json:"factor"`
	Raw          int     `json:"raw"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// MatchResult es el resultado de un par (adoptante, animal).
// Recomputar con los mismos inputs inmutables produce el mismo
// valor; solo ComputedAt varía.
type MatchResult struct {
	AdopterID string `json:"adopter_id"`
	AnimalID  string `json:"animal_id"`

	Score   float64       `json:"score"`
	Factors []FactorScore `json:"factors"`

	RiskFlag    bool     `json:"risk_flag"`
	RiskReasons []string `json:"risk_reasons,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}

// RankStats resume una corrida de ranking: cuántos candidatos
// entraron y cuántos quedaron fuera (y por qué).
type RankStats struct {
	Candidates  int `json:"candidates"`
	Unavailable int `json:"unavailable"`
	Malformed   int `json:"malformed"`
	Scored      int `json:"scored"`
}
