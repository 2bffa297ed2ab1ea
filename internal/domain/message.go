package domain

// Turn is one free-form entry of the client-held conversation history.
// Conventionally {"role": ..., "content": ...}; nothing is validated.
type Turn map[string]any

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a normalized turn ready to be sent to the model.
type Message struct {
	Role    string
	Content string
}
