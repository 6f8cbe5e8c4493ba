package sessions

import (
	"context"
	"errors"
)

var (
	// ErrSessionNotFound lo devuelve todo Store ante un id desconocido.
	ErrSessionNotFound = errors.New("session not found")
)

// Store es la persistencia durable de sesiones, opaca para el core.
// Save es idempotente: sobrescribe por id, nunca agrega.
// Cualquier key/value durable que cumpla estas tres operaciones sirve.
type Store interface {
	Save(ctx context.Context, s AdoptionSession) error
	Load(ctx context.Context, id string) (AdoptionSession, error)
	ListIDs(ctx context.Context) ([]string, error)
}
