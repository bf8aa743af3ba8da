// Package ai produces short natural-language summaries of stored files
// through the Gemini API.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers without text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Summarizer is the model-facing half of summary generation.
type Summarizer interface {
	SummarizeText(ctx context.Context, name, fileType, content string) (string, error)
	SummarizeImage(ctx context.Context, name, mimeType string, data []byte) (string, error)
	SummarizeName(ctx context.Context, name, fileType string) (string, error)
}

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// newGenerator builds the SDK-backed generate call.
var newGenerator = func(ctx context.Context, apiKey string) (generateFunc, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent, nil
}

// Gemini talks to the Gemini API. The SDK client is created on first use so
// a server without an API key still starts; calls then fail and callers fall
// back. A failed init is retried on the next call.
type Gemini struct {
	apiKey string
	model  string

	mu       sync.Mutex
	generate generateFunc
}

var _ Summarizer = (*Gemini)(nil)

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) ensureClient(ctx context.Context) (generateFunc, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.generate != nil {
		return g.generate, nil
	}
	if g.apiKey == "" {
		return nil, errors.New("ai: api key is not configured")
	}
	gen, err := newGenerator(ctx, g.apiKey)
	if err != nil {
		return nil, fmt.Errorf("ai: client init: %w", err)
	}
	g.generate = gen
	return gen, nil
}

func (g *Gemini) SummarizeText(ctx context.Context, name, fileType, content string) (string, error) {
	return g.ask(ctx, genai.NewPartFromText(ContentPrompt(name, fileType, content)))
}

func (g *Gemini) SummarizeImage(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	return g.ask(ctx,
		genai.NewPartFromText(ImagePrompt(name)),
		&genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
	)
}

func (g *Gemini) SummarizeName(ctx context.Context, name, fileType string) (string, error) {
	return g.ask(ctx, genai.NewPartFromText(NamePrompt(name, fileType)))
}

func (g *Gemini) ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	generate, err := g.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := generate(ctx, g.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", fmt.Errorf("ai: generate: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
