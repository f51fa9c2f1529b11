package assist

import (
	"context"
	"fmt"
	"strings"

	"kamicanvas/internal/kami"
	llmclient "kamicanvas/internal/llmClient"
)

// Client turns canvas requests into the two generative calls. It never
// touches canvas state.
type Client struct {
	llm llmclient.LLMClient
}

// New returns a Client backed by llm. A nil llm is a client without
// credentials: every call fails with ErrCredentialsMissing.
func New(llm llmclient.LLMClient) *Client {
	return &Client{llm: llm}
}

// Available reports whether credentials are configured.
func (c *Client) Available() bool {
	return c != nil && c.llm != nil
}

// SuggestSection asks for a suggestion for target, using the other
// non-empty sections as context. An empty reply becomes FallbackSuggestion.
func (c *Client) SuggestSection(ctx context.Context, target kami.Section, all []kami.Section, hint string) (string, error) {
	if !c.Available() {
		return "", ErrCredentialsMissing
	}
	prompt := buildSuggestionPrompt(target, all, hint)
	out, err := c.llm.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if out == "" {
		return FallbackSuggestion, nil
	}
	return out, nil
}

// AnalyzeCanvas requests a structured evaluation of every section. The
// reply is checked for the required fields; values are not range-checked.
func (c *Client) AnalyzeCanvas(ctx context.Context, all []kami.Section) (kami.AnalysisResult, error) {
	if !c.Available() {
		return kami.AnalysisResult{}, ErrCredentialsMissing
	}
	raw, err := c.llm.GenerateJSON(ctx, buildAnalysisPrompt(all), AnalysisSchema())
	if err != nil {
		return kami.AnalysisResult{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return kami.AnalysisResult{}, ErrEmptyResponse
	}
	res, err := kami.ParseAnalysis(raw)
	if err != nil {
		return kami.AnalysisResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return res, nil
}

// MergeSuggestion appends suggestion to existing content under a marker, or
// returns suggestion alone when there is no existing content.
func MergeSuggestion(existing, suggestion string) string {
	if existing == "" {
		return suggestion
	}
	return existing + "\n\n--- AI Suggestion ---\n" + suggestion
}
