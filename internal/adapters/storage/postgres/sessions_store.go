package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"shelter-match/internal/domain/sessions"
)

type SessionsStore struct {
	db *sql.DB
}

func NewSessionsStore(db *sql.DB) *SessionsStore {
	return &SessionsStore{db: db}
}

// Save hace upsert por id: el payload es el JSON completo de la sesión
// (self-describing, campos nombrados) para que un lector con otra
// versión del schema pueda extraer lo que conoce e ignorar el resto.
func (r *SessionsStore) Save(ctx context.Context, s sessions.AdoptionSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO adoption_sessions (id, stage, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET stage = EXCLUDED.stage,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
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
	id = strings.TrimSpace(id)
	if id == "" {
		return sessions.AdoptionSession{}, sessions.ErrSessionNotFound
	}

	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM adoption_sessions WHERE id = $1
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
