package domain

import "time"

// ConversationID correlaciona todos los mensajes de un intercambio con el asistente.
type ConversationID string

func (id ConversationID) String() string { return string(id) }

type SessionState string

const (
	SessionIdle          SessionState = "idle"
	SessionAwaitingReply SessionState = "awaiting_reply"
	SessionDisposed      SessionState = "disposed"
)

// Notification es un aviso transitorio y descartable para el usuario.
type Notification struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
