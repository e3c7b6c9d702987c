// Package history reconstructs discrete conversations from the flat
// append-only conversation log. Grouping is a pure function of the record
// sequence; persisted rows are never touched.
package history

import "github.com/omnichat-ai/omnichat/internal/models"

// PlaceholderTitle is used until a conversation sees its first user message.
const PlaceholderTitle = "New Chat"

// titleLen is how much of the first user message becomes the title.
const titleLen = 30

type Conversation struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Messages []models.Message `json:"messages"`
}

// Index maps conversation ids to their derived conversations while keeping
// first-appearance order for listing.
type Index struct {
	order []string
	byID  map[string]*Conversation
}

// Group derives conversations from log records in insertion order. Every
// conversation starts with the synthetic system message; its title is the
// first 30 characters of its first user message and stays fixed afterwards.
func Group(records []models.Record) *Index {
	ix := &Index{byID: make(map[string]*Conversation)}

	for _, rec := range records {
		conv, ok := ix.byID[rec.ConversationID]
		if !ok {
			conv = &Conversation{
				ID:       rec.ConversationID,
				Title:    PlaceholderTitle,
				Messages: []models.Message{models.SystemMessage()},
			}
			ix.byID[rec.ConversationID] = conv
			ix.order = append(ix.order, rec.ConversationID)
		}

		if rec.Role == models.RoleUser && conv.Title == PlaceholderTitle {
			conv.Title = Title(rec.Content)
		}

		conv.Messages = append(conv.Messages, models.Message{
			Role:    rec.Role,
			Content: rec.Content,
		})
	}

	return ix
}

// Title truncates content to the fixed title prefix length. The cut is on
// characters, not bytes, so multi-byte scripts keep valid titles.
func Title(content string) string {
	runes := []rune(content)
	if len(runes) > titleLen {
		return string(runes[:titleLen])
	}
	return content
}

func (ix *Index) Get(conversationID string) (*Conversation, bool) {
	conv, ok := ix.byID[conversationID]
	return conv, ok
}

// All returns the conversations in first-appearance order.
func (ix *Index) All() []*Conversation {
	out := make([]*Conversation, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

func (ix *Index) Len() int {
	return len(ix.order)
}
