package tools

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/omnichat-ai/omnichat/internal/hfimage"
	"github.com/omnichat-ai/omnichat/internal/models"
)

// DefaultImageModels are the candidate backends tried in order.
var DefaultImageModels = []string{
	"stabilityai/stable-diffusion-xl-base-1.0",
	"black-forest-labs/FLUX.1-schnell",
	"ByteDance/SDXL-Lightning",
}

// ImageGen tries each candidate model until one produces an image. A quota
// failure stops the chain immediately; a missing or gated model moves on to
// the next candidate.
type ImageGen struct {
	gen       hfimage.Generator
	models    []string
	outputDir string
}

func NewImageGen(gen hfimage.Generator, candidates []string, outputDir string) *ImageGen {
	if len(candidates) == 0 {
		candidates = DefaultImageModels
	}
	return &ImageGen{gen: gen, models: candidates, outputDir: outputDir}
}

func (g *ImageGen) Generate(ctx context.Context, prompt string) models.Message {
	var lastErr error
	for _, model := range g.models {
		data, err := g.gen.TextToImage(ctx, model, prompt)
		if err == nil {
			return g.save(data)
		}

		lastErr = err
		switch {
		case hfimage.IsQuota(err):
			return assistantText("Image generation hit its credits/quota limit. Wait for the quota to reset or add billing.")
		case hfimage.IsNotFound(err), hfimage.IsGated(err):
			continue
		}
		// Other failures also move on to the next candidate.
	}

	msg := "Image generation failed on all models."
	if lastErr != nil {
		msg += " Last error: " + lastErr.Error()
	}
	return assistantText(msg)
}

func (g *ImageGen) save(data []byte) models.Message {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return assistantText("Error: failed to save image: " + err.Error())
	}

	path := filepath.Join(g.outputDir, uuid.NewString()+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return assistantText("Error: failed to save image: " + err.Error())
	}

	return models.Message{Role: models.RoleAssistant, Type: models.TypeImage, Content: path}
}
