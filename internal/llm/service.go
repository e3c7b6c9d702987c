package llm

import (
	"context"
	"errors"
	"time"

	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client is the text-completion provider surface used by the tool adapters.
type Client interface {
	// Chat completes an ordered role-tagged message window.
	Chat(ctx context.Context, window []models.Message) (string, error)
	// Prompt completes a single free-form user prompt.
	Prompt(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	llm llms.Model
}

func New(baseURL, token, model string) (*Service, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &Service{llm: llm}, nil
}

func (s *Service) Chat(ctx context.Context, window []models.Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(window))
	for _, msg := range window {
		content = append(content, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func (s *Service) Prompt(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
