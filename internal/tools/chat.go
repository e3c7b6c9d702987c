// Package tools holds the four adapters behind the session controller: chat,
// video summary, document summary, and image generation. Adapters never
// propagate provider failures; every outcome is an assistant message.
package tools

import (
	"context"

	"github.com/omnichat-ai/omnichat/internal/llm"
	"github.com/omnichat-ai/omnichat/internal/models"
)

func assistantText(content string) models.Message {
	return models.Message{Role: models.RoleAssistant, Content: content}
}

// Chat sends the message window to the completion provider as-is.
type Chat struct {
	llm llm.Client
}

func NewChat(client llm.Client) *Chat {
	return &Chat{llm: client}
}

func (c *Chat) Respond(ctx context.Context, window []models.Message) models.Message {
	completion, err := c.llm.Chat(ctx, window)
	if err != nil {
		return assistantText("Error: failed to get a response: " + err.Error())
	}
	return assistantText(completion)
}
