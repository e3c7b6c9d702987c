package session

import (
	"context"
	"fmt"

	"github.com/omnichat-ai/omnichat/internal/history"
	"github.com/omnichat-ai/omnichat/internal/models"
)

// WindowSize is how many trailing messages a turn hands to the chat
// provider. Older history stays durable and visible, it just isn't sent.
const WindowSize = 10

// Log is the slice of the conversation log the controller writes through.
type Log interface {
	AppendMessage(username, conversationID, role, content string) (string, error)
	DeleteConversation(conversationID string) error
}

// Tool turns the current message window into one assistant message. Provider
// and validation failures come back as ordinary text messages, never as
// errors.
type Tool interface {
	Respond(ctx context.Context, window []models.Message) models.Message
}

// ToolFunc adapts a function to the Tool interface.
type ToolFunc func(ctx context.Context, window []models.Message) models.Message

func (f ToolFunc) Respond(ctx context.Context, window []models.Message) models.Message {
	return f(ctx, window)
}

// Session is one user's active conversation state. The controller is the
// sole mutator; every in-memory append is immediately followed by a durable
// write or rolled back.
type Session struct {
	Username string

	// ActiveConversationID is empty for an unsaved new conversation.
	ActiveConversationID string
	Messages             []models.Message

	log Log
}

func New(username string, log Log) *Session {
	s := &Session{Username: username, log: log}
	s.StartNew()
	return s
}

// StartNew resets the session to a fresh unsaved conversation.
func (s *Session) StartNew() {
	s.ActiveConversationID = ""
	s.Messages = []models.Message{models.SystemMessage()}
}

// Open replaces the session state with a conversation derived from the log.
func (s *Session) Open(conv *history.Conversation) {
	s.ActiveConversationID = conv.ID
	s.Messages = append([]models.Message(nil), conv.Messages...)
}

// Window returns the trailing slice of messages sent to the provider.
func (s *Session) Window() []models.Message {
	if len(s.Messages) <= WindowSize {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-WindowSize:]
}

// SubmitUserTurn appends and persists the user message, runs the tool on the
// last-10 window, then appends and persists the assistant result. A failed
// durable write aborts the turn and leaves the in-memory state as it was.
func (s *Session) SubmitUserTurn(ctx context.Context, content string, tool Tool) (models.Message, error) {
	userMsg := models.Message{Role: models.RoleUser, Content: content}
	s.Messages = append(s.Messages, userMsg)

	convID, err := s.log.AppendMessage(s.Username, s.ActiveConversationID, models.RoleUser, content)
	if err != nil {
		s.Messages = s.Messages[:len(s.Messages)-1]
		return models.Message{}, fmt.Errorf("failed to save user message: %w", err)
	}
	s.ActiveConversationID = convID

	result := tool.Respond(ctx, s.Window())

	// Image results carry a file path in memory; the log gets a plain text
	// marker instead.
	persisted := result.Content
	if result.Type == models.TypeImage {
		persisted = "Image generated: " + content
	}

	s.Messages = append(s.Messages, result)
	if _, err := s.log.AppendMessage(s.Username, s.ActiveConversationID, models.RoleAssistant, persisted); err != nil {
		s.Messages = s.Messages[:len(s.Messages)-1]
		return models.Message{}, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return result, nil
}

// RunTool records only the tool's assistant message, without a user turn.
// Video and document summaries enter history this way.
func (s *Session) RunTool(ctx context.Context, tool Tool) (models.Message, error) {
	result := tool.Respond(ctx, s.Window())

	convID, err := s.log.AppendMessage(s.Username, s.ActiveConversationID, models.RoleAssistant, result.Content)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to save assistant message: %w", err)
	}
	s.ActiveConversationID = convID
	s.Messages = append(s.Messages, result)

	return result, nil
}

// Delete purges the conversation from the log and, if it was the open one,
// resets to a fresh unsaved conversation.
func (s *Session) Delete(conversationID string) error {
	if err := s.log.DeleteConversation(conversationID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if conversationID == s.ActiveConversationID {
		s.StartNew()
	}
	return nil
}
