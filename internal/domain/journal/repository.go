package journal

import "context"

type Repository interface {
	Append(ctx context.Context, e SessionEvent) error
	ListBySession(ctx context.Context, sessionID string) ([]SessionEvent, error)
}
