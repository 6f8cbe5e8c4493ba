package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelter-match/internal/domain/adopters"
	"shelter-match/internal/domain/catalog"
	"shelter-match/internal/domain/journal"
	"shelter-match/internal/domain/matching"
)

func RegisterRoutes(r chi.Router, svc *Service, catalogSvc *catalog.Service, scorer *matching.Scorer, jr journal.Repository) {
	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", startSessionHandler(svc))
		sr.Get("/", listSessionsHandler(svc))
		sr.Get("/stats", statsHandler(svc))

		sr.Get("/{sessionID}", getSessionHandler(svc))
		sr.Post("/{sessionID}/profile", attachProfileHandler(svc))
		sr.Post("/{sessionID}/match", runMatchingHandler(svc, catalogSvc, scorer))
		sr.Post("/{sessionID}/select", selectMatchHandler(svc))
		sr.Post("/{sessionID}/close", closeSessionHandler(svc))
		sr.Post("/{sessionID}/abandon", abandonSessionHandler(svc))

		sr.Get("/{sessionID}/support-context", supportContextHandler(svc))
		sr.Get("/{sessionID}/events", listEventsHandler(jr))
	})
}

type selectRequest struct {
	AnimalID string `json:"animal_id"`
}

type closeRequest struct {
	Outcome  string `json:"outcome"`
	Feedback string `json:"feedback"`
}

type matchResponse struct {
	Session AdoptionSession    `json:"session"`
	Stats   matching.RankStats `json:"stats"`
}

func startSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Start(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sess)
	}
}

func listSessionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := svc.ListIDs(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"session_ids": ids})
	}
}

func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func attachProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p adopters.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.AttachProfile(r.Context(), chi.URLParam(r, "sessionID"), p)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// runMatchingHandler orquesta el borde PROFILED -> MATCHED: toma los
// candidatos del catálogo, corre el ranking y lo adjunta a la sesión.
func runMatchingHandler(svc *Service, catalogSvc *catalog.Service, scorer *matching.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")

		sess, err := svc.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if sess.Profile == nil {
			http.Error(w, "session has no profile attached", http.StatusConflict)
			return
		}

		candidates, err := catalogSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		results, stats, err := scorer.Rank(*sess.Profile, candidates)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		updated, err := svc.AttachMatches(r.Context(), id, results)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, matchResponse{Session: updated, Stats: stats})
	}
}

func selectMatchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Select(r.Context(), chi.URLParam(r, "sessionID"), req.AnimalID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func closeSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req closeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Close(r.Context(), chi.URLParam(r, "sessionID"), Outcome(req.Outcome), req.Feedback)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func abandonSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.Abandon(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func supportContextHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := svc.SupportContext(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sc)
	}
}

func listEventsHandler(jr journal.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if jr == nil {
			writeJSON(w, http.StatusOK, []journal.SessionEvent{})
			return
		}
		events, err := jr.ListBySession(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// writeDomainError mapea la taxonomía de errores a status HTTP.
// Todo error rechazado lleva el contexto (campo, stage, session id)
// necesario para reintentar sin adivinar.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidProfile),
		errors.Is(err, ErrInvalidSelection),
		errors.Is(err, ErrInvalidOutcome),
		errors.Is(err, matching.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en los handlers de cada
// módulo para no extraer helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
