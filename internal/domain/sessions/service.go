package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shelter-match/internal/domain/adopters"
	"shelter-match/internal/domain/journal"
	"shelter-match/internal/domain/matching"
	"shelter-match/internal/platform/metrics"
)

var (
	ErrInvalidProfile    = errors.New("invalid profile")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidOutcome    = errors.New("invalid outcome")
)

// Service es el dueño exclusivo de la máquina de estados de la sesión.
// Las transiciones de una misma sesión se serializan con un lock por id;
// la precondición y el efecto son atómicos respecto a otras transiciones.
type Service struct {
	store   Store
	journal journal.Repository // opcional, best effort
	log     *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store, jr journal.Repository, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		journal: jr,
		log:     log,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Start crea una sesión en CREATED, todavía sin perfil.
func (s *Service) Start(ctx context.Context) (AdoptionSession, error) {
	now := s.now().UTC()
	sess := AdoptionSession{
		ID:        uuid.NewString(),
		Stage:     StageCreated,
		Matches:   []matching.MatchResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return AdoptionSession{}, fmt.Errorf("persist session %s: %w", sess.ID, err)
	}

	s.committed(ctx, sess, journal.TypeSessionStarted, "")
	return sess, nil
}

// AttachProfile adjunta un perfil validado: CREATED -> PROFILED.
// Si el perfil no valida, la sesión queda en CREATED.
func (s *Service) AttachProfile(ctx context.Context, id string, p adopters.Profile) (AdoptionSession, error) {
	return s.transition(ctx, id, func(cur AdoptionSession) (AdoptionSession, journal.EventType, string, error) {
		if cur.Stage != StageCreated {
			return cur, "", "", transitionErr(cur, StageProfiled)
		}
		if err := p.Validate(); err != nil {
			return cur, "", "", fmt.Errorf("%w: session %s: %v", ErrInvalidProfile, cur.ID, err)
		}

		cur.Profile = &p
		cur.Stage = StageProfiled
		return cur, journal.TypeProfileAttached, "adopter " + p.ID, nil
	})
}

// AttachMatches adjunta la salida del ranking: PROFILED -> MATCHED.
// Un ranking vacío es un resultado válido y también avanza el stage.
func (s *Service) AttachMatches(ctx context.Context, id string, results []matching.MatchResult) (AdoptionSession, error) {
	return s.transition(ctx, id, func(cur AdoptionSession) (AdoptionSession, journal.EventType, string, error) {
		if cur.Stage != StageProfiled {
			return cur, "", "", transitionErr(cur, StageMatched)
		}

		if results == nil {
			results = []matching.MatchResult{}
		}
		cur.Matches = results
		cur.Stage = StageMatched
		return cur, journal.TypeMatchesAttached, fmt.Sprintf("%d matches", len(results)), nil
	})
}

// Select elige un match del ranking adjunto: MATCHED -> ENGAGED.
// El elegido debe ser miembro del ranking de la sesión.
func (s *Service) Select(ctx context.Context, id, animalID string) (AdoptionSession, error) {
	return s.transition(ctx, id, func(cur AdoptionSession) (AdoptionSession, journal.EventType, string, error) {
		if cur.Stage != StageMatched {
			return cur, "", "", transitionErr(cur, StageEngaged)
		}

		var chosen *matching.MatchResult
		for i := range cur.Matches {
			if cur.Matches[i].AnimalID == animalID {
				chosen = &cur.Matches[i]
				break
			}
		}
		if chosen == nil {
			return cur, "", "", fmt.Errorf("%w: session %s: animal %s is not in the ranked results",
				ErrInvalidSelection, cur.ID, animalID)
		}

		sel := *chosen
		cur.Selected = &sel
		cur.ContextNote = buildContextNote(cur.Profile, sel)
		cur.Stage = StageEngaged
		return cur, journal.TypeMatchSelected, "animal " + animalID, nil
	})
}

// Close finaliza la adopción (confirmada o rechazada): ENGAGED -> CLOSED.
func (s *Service) Close(ctx context.Context, id string, outcome Outcome, feedback string) (AdoptionSession, error) {
	return s.transition(ctx, id, func(cur AdoptionSession) (AdoptionSession, journal.EventType, string, error) {
		if cur.Stage != StageEngaged {
			return cur, "", "", transitionErr(cur, StageClosed)
		}

		switch outcome {
		case OutcomeAdopted, OutcomeDeclined:
		default:
			return cur, "", "", fmt.Errorf("%w: session %s: outcome %q is not one of adopted/declined",
				ErrInvalidOutcome, cur.ID, outcome)
		}

		cur.Outcome = outcome
		cur.Feedback = strings.TrimSpace(feedback)
		cur.Stage = StageClosed
		return cur, journal.TypeSessionClosed, string(outcome), nil
	})
}

// Abandon cancela explícitamente desde cualquier stage no terminal.
func (s *Service) Abandon(ctx context.Context, id string) (AdoptionSession, error) {
	return s.transition(ctx, id, func(cur AdoptionSession) (AdoptionSession, journal.EventType, string, error) {
		// Terminal ya se chequeó; cualquier otro stage puede abandonar.
		cur.Stage = StageAbandoned
		return cur, journal.TypeSessionAbandoned, "", nil
	})
}

func (s *Service) Get(ctx context.Context, id string) (AdoptionSession, error) {
	return s.store.Load(ctx, id)
}

func (s *Service) ListIDs(ctx context.Context) ([]string, error) {
	return s.store.ListIDs(ctx)
}

// SupportContext entrega el match elegido y la nota de contexto
// para el colaborador de soporte (read-only).
func (s *Service) SupportContext(ctx context.Context, id string) (SupportContext, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return SupportContext{}, err
	}
	if sess.Selected == nil {
		return SupportContext{}, fmt.Errorf("%w: session %s has no selected match yet", ErrInvalidSelection, id)
	}

	return SupportContext{
		SessionID:   sess.ID,
		Selected:    *sess.Selected,
		ContextNote: sess.ContextNote,
	}, nil
}

// Stats recorre el store y agrega el estado de todas las sesiones.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{ByStage: make(map[Stage]int)}
	sum := 0.0
	for _, id := range ids {
		sess, err := s.store.Load(ctx, id)
		if err != nil {
			return Stats{}, err
		}
		st.Total++
		st.ByStage[sess.Stage]++
		if sess.Selected != nil {
			st.WithSelection++
			sum += sess.Selected.Score
		}
	}
	if st.WithSelection > 0 {
		st.AverageSelectedScore = sum / float64(st.WithSelection)
	}
	return st, nil
}

// transition serializa la transición por sesión: carga, aplica el paso
// sobre una copia, persiste y recién ahí la considera durable. Si el
// Save falla, el estado previo queda intacto y el error sube al caller.
func (s *Service) transition(ctx context.Context, id string, step func(AdoptionSession) (AdoptionSession, journal.EventType, string, error)) (AdoptionSession, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	cur, err := s.store.Load(ctx, id)
	if err != nil {
		return AdoptionSession{}, err
	}

	if cur.Stage.Terminal() {
		return AdoptionSession{}, fmt.Errorf("%w: session %s is terminal (stage %s)", ErrInvalidTransition, cur.ID, cur.Stage)
	}

	next, evType, note, err := step(cur)
	if err != nil {
		return AdoptionSession{}, err
	}

	next.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, next); err != nil {
		return AdoptionSession{}, fmt.Errorf("persist session %s: %w", id, err)
	}

	s.committed(ctx, next, evType, note)
	return next, nil
}

func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}

// committed emite las notificaciones one-way de una transición durable:
// métrica, log estructurado y entrada de journal (best effort).
func (s *Service) committed(ctx context.Context, sess AdoptionSession, evType journal.EventType, note string) {
	metrics.StageTransitions.WithLabelValues(string(sess.Stage)).Inc()

	if s.log != nil {
		s.log.Info("session stage transition",
			zap.String("session_id", sess.ID),
			zap.String("stage", string(sess.Stage)),
			zap.String("event", string(evType)),
		)
	}

	if s.journal == nil {
		return
	}
	ev := journal.SessionEvent{
		ID:         uuid.NewString(),
		SessionID:  sess.ID,
		Type:       evType,
		Stage:      string(sess.Stage),
		Note:       note,
		RecordedAt: sess.UpdatedAt,
	}
	if err := s.journal.Append(ctx, ev); err != nil && s.log != nil {
		s.log.Warn("journal append failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	}
}

func transitionErr(cur AdoptionSession, target Stage) error {
	return fmt.Errorf("%w: session %s cannot move from %s to %s", ErrInvalidTransition, cur.ID, cur.Stage, target)
}

// buildContextNote resume el match elegido para el paso de soporte.
func buildContextNote(p *adopters.Profile, m matching.MatchResult) string {
	parts := make([]string, 0, 4)
	if p != nil {
		parts = append(parts, fmt.Sprintf("%s activity household", p.ActivityLevel))
		parts = append(parts, strings.ReplaceAll(string(p.HomeEnvironment), "_", " "))
		if p.HasChildren {
			parts = append(parts, "children at home")
		}
	}
	parts = append(parts, fmt.Sprintf("match score %.1f", m.Score))
	if m.RiskFlag {
		parts = append(parts, "risk: "+strings.Join(m.RiskReasons, "; "))
	}
	return strings.Join(parts, ", ")
}
