// Package hfimage calls the Hugging Face inference API for text-to-image
// generation.
package hfimage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// StatusError carries the HTTP status and body of a failed provider call so
// callers can branch on the failure category.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image provider returned status %d: %s", e.Code, e.Body)
}

// IsQuota reports a credits/payment failure. Fatal: trying further models
// cannot help.
func IsQuota(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusPaymentRequired ||
		strings.Contains(se.Body, "Payment Required") ||
		strings.Contains(se.Body, "credits")
}

// IsNotFound reports a model the provider does not serve; the next candidate
// may still work.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// IsGated reports a gated or unauthenticated model; the next candidate may
// still work.
func IsGated(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	if se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden {
		return true
	}
	body := strings.ToLower(se.Body)
	return strings.Contains(body, "gated") || strings.Contains(body, "must be authenticated")
}

// Generator is the image provider surface the image tool depends on.
type Generator interface {
	TextToImage(ctx context.Context, model, prompt string) ([]byte, error)
}

type Client struct {
	http *resty.Client
}

func NewClient(token string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL("https://api-inference.huggingface.co").
			SetAuthToken(token),
	}
}

func (c *Client) TextToImage(ctx context.Context, model, prompt string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"inputs": prompt}).
		Post("/models/" + model)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, &StatusError{Code: res.StatusCode(), Body: string(res.Body())}
	}
	return res.Body(), nil
}
