package domain

import "time"

// Turn es un mensaje de la conversacion del asistente.
type Turn struct {
	ID        string    `json:"id"`
	Seq       int       `json:"seq"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"is_user"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationState refleja si hay una llamada al proveedor en curso.
type ConversationState string

const (
	StateIdle             ConversationState = "idle"
	StateAwaitingResponse ConversationState = "awaiting_response"
)
