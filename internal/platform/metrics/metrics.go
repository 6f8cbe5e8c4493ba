package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores laterales del matching y del ciclo de sesión.
// Son notificaciones one-way: nada del core depende de ellos.
var (
	CandidatesUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_candidates_unavailable_total",
		Help: "Candidates excluded from ranking because adoption_status is not available.",
	})

	CandidatesMalformed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matching_candidates_malformed_total",
		Help: "Candidates excluded from ranking because the record failed scoring validation.",
	})

	FactorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_factor_fallback_total",
		Help: "Times a factor fell back to the neutral sub-score for an unrecognized category.",
	}, []string{"factor"})

	StageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sessions_stage_transitions_total",
		Help: "Durable session stage transitions by target stage.",
	}, []string{"stage"})

	IngestSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_ingest_skipped_total",
		Help: "Animal records rejected at the ingestion boundary.",
	})
)
