package llmclient

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderFake   = "fake"
)

// Settings selects and configures one provider.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// New builds the client named by s.Provider. An empty provider means Gemini.
func New(ctx context.Context, s Settings) (LLMClient, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderGemini:
		return NewGeminiClient(ctx, s.APIKey, s.Model)
	case ProviderOpenAI:
		return NewOpenAIClient(s.APIKey, s.BaseURL, s.Model)
	case ProviderFake:
		return NewFakeClient(), nil
	default:
		return nil, NewPermanentError(fmt.Errorf("unknown llm provider %q", s.Provider))
	}
}
