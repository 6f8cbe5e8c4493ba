package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	_ "modernc.org/sqlite" // driver sqlite puro Go

	"shelter-match/internal/domain/sessions"
)

// Open abre (o crea) la base embebida y asegura el schema.
// Pensado para deployments de un solo binario sin Postgres.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		path = "shelter-match.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS adoption_sessions (
			id TEXT PRIMARY KEY,
			stage TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS session_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			stage TEXT NOT NULL,
			note TEXT,
			recorded_at TIMESTAMP NOT NULL
		);
	`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

type SessionsStore struct {
	db *sql.DB
}

func NewSessionsStore(db *sql.DB) *SessionsStore {
	return &SessionsStore{db: db}
}

// Save hace upsert por id con el mismo payload JSON self-describing
// que el backend Postgres.
func (r *SessionsStore) Save(ctx context.Context, s sessions.AdoptionSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO adoption_sessions (id, stage, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET stage = excluded.stage,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`,
		s.ID,
		string(s.Stage),
		payload,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SessionsStore) Load(ctx context.Context, id string) (sessions.AdoptionSession, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM adoption_sessions WHERE id = ?
	`, id).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return sessions.AdoptionSession{}, sessions.ErrSessionNotFound
		}
		return sessions.AdoptionSession{}, err
	}

	var s sessions.AdoptionSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return sessions.AdoptionSession{}, err
	}
	return s, nil
}

func (r *SessionsStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM adoption_sessions ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
