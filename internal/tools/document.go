package tools

import (
	"context"
	"strings"

	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/omnichat-ai/omnichat/internal/pdf"
	"github.com/omnichat-ai/omnichat/internal/summarize"
)

// DocumentSummary extracts the text of an uploaded PDF and summarizes it.
type DocumentSummary struct {
	sum     *summarize.Summarizer
	extract func(contents []byte) ([]string, error)
}

func NewDocumentSummary(sum *summarize.Summarizer) *DocumentSummary {
	return &DocumentSummary{sum: sum, extract: pdf.ExtractText}
}

func (d *DocumentSummary) Summarize(ctx context.Context, contents []byte) models.Message {
	pages, err := d.extract(contents)
	if err != nil {
		return assistantText("Error: failed to read PDF: " + err.Error())
	}

	text := strings.Join(pages, "")
	if strings.TrimSpace(text) == "" {
		return assistantText("Could not extract text from this PDF.")
	}

	summary, err := d.sum.MapReduce(ctx, text,
		"Summarize this part of the PDF clearly:",
		"Combine these into one clear summary:",
	)
	if err != nil {
		return assistantText("Error: " + err.Error())
	}

	return assistantText("PDF Summary:\n" + summary)
}
