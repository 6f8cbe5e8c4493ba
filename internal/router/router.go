package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	mem "shelter-match/internal/adapters/storage/memory"
	pg "shelter-match/internal/adapters/storage/postgres"
	sq "shelter-match/internal/adapters/storage/sqlite"
	"shelter-match/internal/domain/catalog"
	"shelter-match/internal/domain/journal"
	"shelter-match/internal/domain/matching"
	"shelter-match/internal/domain/sessions"
)

type Options struct {
	Logger *zap.Logger

	// Opcional: si viene, usa Postgres para sesiones y journal.
	// Si no, intenta DB_DSN, luego SQLITE_PATH, y cae a in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	var (
		store       sessions.Store
		journalRepo journal.Repository
	)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else if opts.Logger != nil {
				opts.Logger.Warn("postgres unavailable, falling back", zap.Error(err))
			}
		}
	}

	switch {
	case db != nil:
		store = pg.NewSessionsStore(db)
		journalRepo = pg.NewJournalRepo(db)
	case os.Getenv("SQLITE_PATH") != "":
		sdb, err := sq.Open(os.Getenv("SQLITE_PATH"))
		if err == nil {
			store = sq.NewSessionsStore(sdb)
			journalRepo = sq.NewJournalRepo(sdb)
			break
		}
		if opts.Logger != nil {
			opts.Logger.Warn("sqlite unavailable, falling back to in-memory", zap.Error(err))
		}
		fallthrough
	default:
		store = mem.NewSessionsStore()
		journalRepo = mem.NewJournalRepo()
	}

	catalogRepo := mem.NewCatalogRepo()

	// Services por módulo
	catalogSvc := catalog.NewService(catalogRepo, opts.Logger)
	scorer := matching.NewScorer(opts.Logger)
	sessionsSvc := sessions.NewService(store, journalRepo, opts.Logger)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	sessions.RegisterRoutes(r, sessionsSvc, catalogSvc, scorer, journalRepo)

	return r
}
