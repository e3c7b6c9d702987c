package models

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message content kinds. Only the in-memory representation is typed; the
// conversation log stores plain text.
const (
	TypeText  = "text"
	TypeImage = "image"
)

// SystemPrompt is the assistant persona prepended to every conversation. It
// is reinserted at read time and never written to the conversation log.
const SystemPrompt = "You are a helpful, friendly AI assistant."

type Message struct {
	Role    string `json:"role"`
	Type    string `json:"type,omitempty"` // empty means text
	Content string `json:"content"`
}

// Record is one persisted row of the conversation log, as returned by
// ListMessages in insertion order.
type Record struct {
	ConversationID string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
}

func SystemMessage() Message {
	return Message{Role: RoleSystem, Content: SystemPrompt}
}
