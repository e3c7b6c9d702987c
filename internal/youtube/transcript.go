// Package youtube fetches video transcripts through the public timedtext
// endpoint.
package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video id out of the known URL
// shapes. Returns "" when none match.
func ExtractVideoID(url string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrNotFound            = errors.New("no transcript found for this video")
)

type Segment struct {
	Start float64
	Dur   float64
	Text  string
}

// Fetcher is the transcript provider surface the video tool depends on.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, lang string) ([]Segment, error)
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{http: resty.New().SetBaseURL("https://video.google.com")}
}

type transcript struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func (c *Client) Fetch(ctx context.Context, videoID, lang string) ([]Segment, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"v": videoID, "lang": lang}).
		Get("/timedtext")
	if err != nil {
		return nil, fmt.Errorf("transcript request failed: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, ErrVideoUnavailable
	case res.StatusCode() != http.StatusOK:
		return nil, fmt.Errorf("transcript request returned status %d", res.StatusCode())
	}

	// The endpoint answers 200 with an empty body when captions are turned
	// off for the video.
	body := res.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	var t transcript
	if err := xml.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	if len(t.Texts) == 0 {
		return nil, ErrNotFound
	}

	segments := make([]Segment, 0, len(t.Texts))
	for _, txt := range t.Texts {
		segments = append(segments, Segment{
			Start: txt.Start,
			Dur:   txt.Dur,
			Text:  html.UnescapeString(txt.Body),
		})
	}
	return segments, nil
}

// JoinSegments flattens transcript segments into one text blob.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
