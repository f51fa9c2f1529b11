package llmclient

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidJSON   = errors.New("invalid json from LLM")
	ErrMissingAPIKey = errors.New("llm api key is not configured")
)

// LLMClient is the provider-neutral transport used by the assistant. It
// only performs the API call; logging is layered on through Middleware.
type LLMClient interface {
	Name() string
	Close() error
	// GenerateText sends prompt as a single free-form request and returns
	// the reply text, which may be empty.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks for an application/json reply constrained by schema
	// and returns it untouched. An empty reply is returned as nil.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (json.RawMessage, error)
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
