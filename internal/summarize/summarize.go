// Package summarize implements the chunk-summarize-then-combine algorithm
// shared by the video and document tools.
package summarize

import (
	"context"
	"strings"

	"github.com/omnichat-ai/omnichat/internal/llm"
)

// ChunkSize is the fixed character length long inputs are split into before
// per-chunk summarization.
const ChunkSize = 3500

// Chunks splits text into fixed-size character chunks. Counting is per rune
// so a multi-byte character is never split across two chunks.
func Chunks(text string, maxChars int) []string {
	if maxChars <= 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	var chunks []string
	for i := 0; i < len(runes); i += maxChars {
		end := i + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

type Summarizer struct {
	llm llm.Client
}

func New(client llm.Client) *Summarizer {
	return &Summarizer{llm: client}
}

// MapReduce summarizes each chunk independently with chunkPrompt, then issues
// one final pass over the concatenated partial summaries with combinePrompt.
func (s *Summarizer) MapReduce(ctx context.Context, text, chunkPrompt, combinePrompt string) (string, error) {
	var partials []string
	for _, chunk := range Chunks(text, ChunkSize) {
		partial, err := s.llm.Prompt(ctx, chunkPrompt+"\n"+chunk)
		if err != nil {
			return "", err
		}
		partials = append(partials, partial)
	}

	return s.llm.Prompt(ctx, combinePrompt+"\n\n"+strings.Join(partials, "\n"))
}
