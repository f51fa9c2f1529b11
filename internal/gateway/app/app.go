package app

import (
	"context"
	"fmt"
	"log"

	"kamicanvas/internal/assist"
	"kamicanvas/internal/gateway/config"
	"kamicanvas/internal/gateway/handler"
	"kamicanvas/internal/gateway/server"
	"kamicanvas/internal/gateway/session"
	llmclient "kamicanvas/internal/llmClient"
)

type App struct {
	server   *server.Server
	sessions *session.Manager
	llm      llmclient.LLMClient
}

// New wires the gateway from cfg. A missing API key is not an error: the
// gateway starts with AI actions disabled.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := log.Default()

	llm, err := NewLLM(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}
	if llm == nil {
		logger.Printf("AI credentials missing: suggestions and analysis are disabled")
	}

	// Dependencies
	ai := assist.New(llm)
	sessions := session.NewManager(ai, cfg.Sessions.MaxSessions, cfg.Sessions.TTL, logger)
	canvasHandler := handler.NewCanvasHandler(sessions)

	// Routing & Server
	mux := server.NewMux(canvasHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server:   srv,
		sessions: sessions,
		llm:      llm,
	}, nil
}

// NewLLM builds the configured client, or returns nil when credentials are
// missing.
func NewLLM(ctx context.Context, cfg config.LLMConfig, logger *log.Logger) (llmclient.LLMClient, error) {
	if cfg.CredentialsMissing() {
		return nil, nil
	}
	c, err := llmclient.New(ctx, llmclient.Settings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return llmclient.Wrap(c, llmclient.WithLogging(logger)), nil
}

func (a *App) Start() error {
	return a.server.Start()
}

// Shutdown stops accepting requests, then waits for outstanding AI
// workflows until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := a.sessions.Wait(ctx); err != nil {
		return err
	}
	if a.llm != nil {
		return a.llm.Close()
	}
	return nil
}
