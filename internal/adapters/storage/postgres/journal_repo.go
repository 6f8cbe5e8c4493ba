package postgres

import (
	"context"
	"database/sql"

	"shelter-match/internal/domain/journal"
)

type JournalRepo struct {
	db *sql.DB
}

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) Append(ctx context.Context, e journal.SessionEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_events (id, session_id, type, stage, note, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		e.ID,
		e.SessionID,
		string(e.Type),
		e.Stage,
		e.Note,
		e.RecordedAt,
	)
	return err
}

func (r *JournalRepo) ListBySession(ctx context.Context, sessionID string) ([]journal.SessionEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, type, stage, note, recorded_at
		FROM session_events
		WHERE session_id = $1
		ORDER BY recorded_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.SessionEvent, 0)
	for rows.Next() {
		var e journal.SessionEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Type, &e.Stage, &e.Note, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
