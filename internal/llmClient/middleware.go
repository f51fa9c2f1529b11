package llmclient

import (
	"context"
	"encoding/json"
	"log"
)

type Middleware func(next LLMClient) LLMClient

// Wrap applies middlewares so that the first one is the outermost.
func Wrap(c LLMClient, mws ...Middleware) LLMClient {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			c = mws[i](c)
		}
	}
	return c
}

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next LLMClient) LLMClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next LLMClient
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateText(ctx context.Context, prompt string) (string, error) {
	l.log.Printf("LLM text request (%s): %d bytes", l.next.Name(), len(prompt))
	out, err := l.next.GenerateText(ctx, prompt)
	if err != nil {
		l.log.Printf("LLM text error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

func (l *logging) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (json.RawMessage, error) {
	l.log.Printf("LLM json request (%s): %d bytes", l.next.Name(), len(prompt))
	raw, err := l.next.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		l.log.Printf("LLM json error (%s): %v", l.next.Name(), err)
	}
	return raw, err
}
