package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kamicanvas/internal/assist"
	"kamicanvas/internal/canvas"
	"kamicanvas/internal/controller"
	"kamicanvas/internal/gateway/app"
	"kamicanvas/internal/gateway/config"
)

// NewRootCmd builds the kami command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kami",
		Short:         "KAMI strategic planning canvas with AI assistance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newShellCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway for the browser canvas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return Serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", ":8081", "listen address")
	return cmd
}

// Serve runs the gateway until SIGINT/SIGTERM or ctx ends.
func Serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exiting")
	return nil
}

func newShellCmd() *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit a canvas interactively in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(nil)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			// AI call logs would interleave with the forms.
			logger := log.New(cmd.ErrOrStderr(), "kami: ", log.LstdFlags)
			llm, err := app.NewLLM(ctx, cfg.LLM, logger)
			if err != nil {
				return err
			}
			ai := assist.New(llm)
			out := cmd.OutOrStdout()
			ctl := controller.New(canvas.NewStore(!ai.Available()), ai, Notifier(out), logger)
			return NewShell(ctl, nil, out, exportDir).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for kami-canvas.json")
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
