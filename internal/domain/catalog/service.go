package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shelter-match/internal/platform/metrics"
)

var (
	ErrInvalidRecord = errors.New("invalid animal record")
	ErrNotFound      = errors.New("animal not found")
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// IngestResult resume un lote de ingestión: cuántos registros
// entraron y cuántos se descartaron por malformados.
type IngestResult struct {
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
	Reasons  []string `json:"skipped_reasons,omitempty"`
}

// Ingest incorpora registros del colaborador de catálogo.
// Los registros malformados se excluyen con conteo logueado,
// nunca son un error fatal del lote.
func (s *Service) Ingest(ctx context.Context, records []AnimalRecord) (IngestResult, error) {
	res := IngestResult{}

	for _, a := range records {
		if err := validateRecord(a); err != nil {
			res.Skipped++
			res.Reasons = append(res.Reasons, fmt.Sprintf("%s: %v", a.ID, err))
			metrics.IngestSkipped.Inc()
			if s.log != nil {
				s.log.Warn("skipping malformed animal record",
					zap.String("animal_id", a.ID),
					zap.Error(err),
				)
			}
			continue
		}

		if err := s.repo.Upsert(ctx, a); err != nil {
			return res, fmt.Errorf("upsert animal %s: %w", a.ID, err)
		}
		res.Accepted++
	}

	if s.log != nil && res.Skipped > 0 {
		s.log.Info("catalog ingest completed with skips",
			zap.Int("accepted", res.Accepted),
			zap.Int("skipped", res.Skipped),
		)
	}

	return res, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnimalRecord{}, fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]AnimalRecord, error) {
	return s.repo.List(ctx)
}

// ListAvailable devuelve solo candidatos elegibles para ranking.
func (s *Service) ListAvailable(ctx context.Context) ([]AnimalRecord, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AnimalRecord, 0, len(all))
	for _, a := range all {
		if a.AdoptionStatus == StatusAvailable {
			out = append(out, a)
		}
	}
	return out, nil
}

func validateRecord(a AnimalRecord) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(string(a.Species)) == "" {
		return fmt.Errorf("%w: species is required", ErrInvalidRecord)
	}
	if a.AgeMonths < 0 {
		return fmt.Errorf("%w: age_months must be >= 0", ErrInvalidRecord)
	}

	switch a.AdoptionStatus {
	case StatusAvailable, StatusPending, StatusAdopted:
	default:
		return fmt.Errorf("%w: adoption_status %q is not one of available/pending/adopted", ErrInvalidRecord, a.AdoptionStatus)
	}

	return nil
}
