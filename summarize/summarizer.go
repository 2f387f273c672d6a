// Package summarize condenses batches of ingested news articles into a short
// markdown digest using the Gemini API.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are a financial news editor. Summarize the
articles you are given into one short paragraph followed by at most five
bullet points of market-relevant facts. Use markdown. Do not invent facts
that are not in the articles. Do not give investment advice.`

// Article is the slice of an ingested news article the summarizer sees.
type Article struct {
	Title   string
	Source  string
	Content string
}

// Summarizer produces markdown digests of news articles.
type Summarizer struct {
	Model  string
	client *genai.Client
}

// New creates a Summarizer backed by the Gemini API.
func New(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{Model: model, client: client}, nil
}

// Summarize returns a markdown digest of the given articles.
func (s *Summarizer) Summarize(ctx context.Context, articles []Article) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("nothing to summarize")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize these %d articles:\n\n", len(articles))
	for i, a := range articles {
		fmt.Fprintf(&b, "## Article %d: %s (%s)\n%s\n\n", i+1, a.Title, a.Source, a.Content)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.Model, genai.Text(b.String()), config)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", s.Model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
