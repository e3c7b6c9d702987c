package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/omnichat-ai/omnichat/internal/summarize"
	"github.com/omnichat-ai/omnichat/internal/youtube"
)

// Summary output languages offered by the UI.
const (
	LanguageEnglish = "English"
	LanguageTelugu  = "Telugu"
)

// VideoSummary fetches a video transcript and distills it into a summary in
// the requested language. Telugu captions are preferred, with a fallback to
// whatever English track is available.
type VideoSummary struct {
	fetcher youtube.Fetcher
	sum     *summarize.Summarizer
}

func NewVideoSummary(fetcher youtube.Fetcher, sum *summarize.Summarizer) *VideoSummary {
	return &VideoSummary{fetcher: fetcher, sum: sum}
}

func (v *VideoSummary) Summarize(ctx context.Context, url, outputLanguage string) models.Message {
	videoID := youtube.ExtractVideoID(url)
	if videoID == "" {
		return assistantText("Invalid YouTube URL")
	}

	segments, transcriptUsed, err := v.fetchWithFallback(ctx, videoID)
	switch {
	case errors.Is(err, youtube.ErrTranscriptsDisabled):
		return assistantText("Transcripts are disabled for this video.")
	case errors.Is(err, youtube.ErrVideoUnavailable):
		return assistantText("Video unavailable.")
	case errors.Is(err, youtube.ErrNotFound):
		return assistantText("No transcript found for this video.")
	case err != nil:
		return assistantText("Error: " + err.Error())
	}

	text := youtube.JoinSegments(segments)
	if strings.TrimSpace(text) == "" {
		return assistantText("Transcript is empty / not available.")
	}

	combinePrompt := "Give the final summary in simple, clear English:"
	if outputLanguage == LanguageTelugu {
		combinePrompt = "Give the final summary in simple Telugu. Use an easy Telugu and English mix if needed:"
	}

	summary, err := v.sum.MapReduce(ctx, text, "Summarize this clearly:", combinePrompt)
	if err != nil {
		return assistantText("Error: " + err.Error())
	}

	return assistantText(fmt.Sprintf(
		"YouTube Summary:\nTranscript used: %s\nSummary language: %s\n\n%s",
		transcriptUsed, outputLanguage, summary,
	))
}

func (v *VideoSummary) fetchWithFallback(ctx context.Context, videoID string) ([]youtube.Segment, string, error) {
	segments, err := v.fetcher.Fetch(ctx, videoID, "te")
	if err == nil {
		return segments, "Telugu", nil
	}

	segments, err = v.fetcher.Fetch(ctx, videoID, "en")
	if err != nil {
		return nil, "", err
	}
	return segments, "English (auto/available)", nil
}
