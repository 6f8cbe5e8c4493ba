package sessions

import (
	"time"

	"shelter-match/internal/domain/adopters"
	"shelter-match/internal/domain/matching"
)

// Stage define el estado de la sesión de adopción.
// @Enum CREATED, PROFILED, MATCHED, ENGAGED, CLOSED, ABANDONED
type Stage string

const (
	StageCreated   Stage = "CREATED"
	StageProfiled  Stage = "PROFILED"
	StageMatched   Stage = "MATCHED"
	StageEngaged   Stage = "ENGAGED"
	StageClosed    Stage = "CLOSED"
	StageAbandoned Stage = "ABANDONED"
)

// Terminal indica si no se admiten más transiciones desde el stage.
func (s Stage) Terminal() bool {
	return s == StageClosed || s == StageAbandoned
}

// Outcome registra cómo cerró la adopción.
// @Enum adopted, declined
type Outcome string

const (
	OutcomeAdopted  Outcome = "adopted"
	OutcomeDeclined Outcome = "declined"
)

// AdoptionSession es el journey de una adopción. Es propiedad
// exclusiva del Service; el Store solo la serializa/deserializa.
type AdoptionSession struct {
	ID string `json:"id"`

	Profile *adopters.Profile `json:"profile,omitempty"`
	Stage   Stage             `json:"stage"`

	// Ranking adjunto al pasar a MATCHED, mejor primero.
	Matches []matching.MatchResult `json:"matches"`

	// Selected queda nil hasta que se elige un match del ranking.
	Selected *matching.MatchResult `json:"selected,omitempty"`

	// ContextNote es la nota libre que consume el colaborador de
	// soporte (ej. "high-energy dog, apartment household").
	ContextNote string `json:"context_note,omitempty"`

	Outcome  Outcome `json:"outcome,omitempty"`
	Feedback string  `json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupportContext es lo que se entrega read-only al colaborador
// de soporte/consejo post-match.
type SupportContext struct {
	SessionID   string               `json:"session_id"`
	Selected    matching.MatchResult `json:"selected"`
	ContextNote string               `json:"context_note"`
}

// Stats agrega el estado de todas las sesiones del store.
type Stats struct {
	Total                int           `json:"total"`
	ByStage              map[Stage]int `json:"by_stage"`
	WithSelection        int           `json:"with_selection"`
	AverageSelectedScore float64       `json:"average_selected_score"`
}
