package llmclient

import (
	"context"
	"encoding/json"
	"sync"
)

const fakeAnalysis = `{"score":50,"summary":"fake analysis","strengths":[],"weaknesses":[],"suggestions":[]}`

// FakeClient returns canned replies for offline runs and tests. Fields may be
// changed between calls; every call is recorded.
type FakeClient struct {
	mu sync.Mutex

	Text    string
	JSON    json.RawMessage
	Err     error
	Prompts []string
	Schemas []*Schema

	// Block, when set, is waited on before each reply.
	Block chan struct{}
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Text: "fake suggestion",
		JSON: json.RawMessage(fakeAnalysis),
	}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := f.wait(ctx); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (json.RawMessage, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	f.Schemas = append(f.Schemas, schema)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.JSON, nil
}

// Calls returns how many requests reached the client.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts)
}

// LastPrompt returns the most recent prompt, or "" before any call.
func (f *FakeClient) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Prompts) == 0 {
		return ""
	}
	return f.Prompts[len(f.Prompts)-1]
}

func (f *FakeClient) wait(ctx context.Context) error {
	f.mu.Lock()
	block := f.Block
	f.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
