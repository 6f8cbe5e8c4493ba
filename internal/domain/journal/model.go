package journal

import "time"

// EventType define los eventos del journey de adopción.
type EventType string

const (
	TypeSessionStarted   EventType = "SESSION_STARTED"
	TypeProfileAttached  EventType = "PROFILE_ATTACHED"
	TypeMatchesAttached  EventType = "MATCHES_ATTACHED"
	TypeMatchSelected    EventType = "MATCH_SELECTED"
	TypeSessionClosed    EventType = "SESSION_CLOSED"
	TypeSessionAbandoned EventType = "SESSION_ABANDONED"
)

// SessionEvent es una entrada append-only del historial de una sesión.
// Se registra después de cada transición durable; es one-way, nunca
// bloquea ni revierte la transición.
type SessionEvent struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`

	Type  EventType `json:"type"`
	Stage string    `json:"stage"`
	Note  string    `json:"note,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}
