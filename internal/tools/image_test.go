package tools

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/omnichat-ai/omnichat/internal/hfimage"
	"github.com/omnichat-ai/omnichat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls   int
	results map[string]error // model -> error, nil means success
	data    []byte
}

func (f *fakeGenerator) TextToImage(_ context.Context, model, _ string) ([]byte, error) {
	f.calls++
	if err := f.results[model]; err != nil {
		return nil, err
	}
	return f.data, nil
}

func TestImageGenQuotaStopsImmediately(t *testing.T) {
	gen := &fakeGenerator{results: map[string]error{
		"m1": &hfimage.StatusError{Code: http.StatusPaymentRequired, Body: "Payment Required"},
	}}
	g := NewImageGen(gen, []string{"m1", "m2", "m3"}, t.TempDir())

	msg := g.Generate(context.Background(), "a fox")

	assert.Equal(t, 1, gen.calls, "must not try further candidates after a quota error")
	assert.Contains(t, msg.Content, "credits/quota")
	assert.Empty(t, msg.Type)
}

func TestImageGenSkipsMissingAndGatedModels(t *testing.T) {
	dir := t.TempDir()
	gen := &fakeGenerator{
		results: map[string]error{
			"m1": &hfimage.StatusError{Code: http.StatusNotFound, Body: "Not Found"},
			"m2": &hfimage.StatusError{Code: http.StatusForbidden, Body: "this model is gated"},
		},
		data: []byte("png bytes"),
	}
	g := NewImageGen(gen, []string{"m1", "m2", "m3"}, dir)

	msg := g.Generate(context.Background(), "a fox")

	assert.Equal(t, 3, gen.calls)
	require.Equal(t, models.TypeImage, msg.Type)

	contents, err := os.ReadFile(msg.Content)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), contents)
}

func TestImageGenAllCandidatesExhausted(t *testing.T) {
	gen := &fakeGenerator{results: map[string]error{
		"m1": &hfimage.StatusError{Code: http.StatusNotFound, Body: "Not Found"},
		"m2": errors.New("connection reset"),
	}}
	g := NewImageGen(gen, []string{"m1", "m2"}, t.TempDir())

	msg := g.Generate(context.Background(), "a fox")

	assert.Equal(t, 2, gen.calls)
	assert.Contains(t, msg.Content, "failed on all models")
	assert.Contains(t, msg.Content, "connection reset")
}

func TestImageGenDefaultCandidates(t *testing.T) {
	g := NewImageGen(&fakeGenerator{data: []byte("x")}, nil, t.TempDir())
	assert.Equal(t, DefaultImageModels, g.models)
}
