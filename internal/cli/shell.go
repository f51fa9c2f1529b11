package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"kamicanvas/internal/canvas"
	"kamicanvas/internal/cli/formatter"
	"kamicanvas/internal/controller"
)

// Shell is the terminal presentation of one canvas.
type Shell struct {
	ctl       *controller.Controller
	prompt    Prompter
	out       io.Writer
	exportDir string
}

func NewShell(ctl *controller.Controller, prompt Prompter, out io.Writer, exportDir string) *Shell {
	if prompt == nil {
		prompt = huhPrompter{}
	}
	return &Shell{ctl: ctl, prompt: prompt, out: out, exportDir: exportDir}
}

// Notifier prints notices to w; pass it to the controller the shell drives.
func Notifier(w io.Writer) controller.Notifier {
	return controller.NotifierFunc(func(msg string) {
		fmt.Fprintln(w, formatter.Notice(msg))
	})
}

// Run loops until the user quits or aborts.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatter.Canvas(s.ctl.Snapshot()))

		action, err := s.prompt.Action(!s.ctl.CredentialsMissing())
		if err != nil {
			return quietAbort(err)
		}
		if action == ActionQuit {
			return nil
		}
		if err := s.dispatch(ctx, action); err != nil {
			return quietAbort(err)
		}
	}
}

func quietAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func (s *Shell) dispatch(ctx context.Context, action Action) error {
	switch action {
	case ActionEdit:
		id, err := s.prompt.Section(s.ctl.Store().Sections())
		if err != nil {
			return err
		}
		sec, err := s.ctl.Store().Section(id)
		if err != nil {
			return err
		}
		text, err := s.prompt.Text(sec.Title, sec.Description, sec.Content)
		if err != nil {
			return err
		}
		return s.ctl.EditSection(id, text)

	case ActionSuggest:
		id, err := s.prompt.Section(s.ctl.Store().Sections())
		if err != nil {
			return err
		}
		hint, err := s.prompt.Input("Focus (optional)", "e.g. local data sources")
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatter.StyleYellow.Render("Asking AI..."))
		return s.ctl.RequestSuggestion(ctx, id, hint)

	case ActionAnalyze:
		s.ctl.RequestAnalysis(ctx)
		snap := s.ctl.Snapshot()
		if snap.AnalysisOpen {
			fmt.Fprintln(s.out, formatter.Analysis(snap))
			s.ctl.CloseAnalysis()
		}
		return nil

	case ActionClear:
		cleared, err := s.ctl.Clear(ctx, s.prompt)
		if err != nil {
			return err
		}
		if cleared {
			fmt.Fprintln(s.out, formatter.StyleDim.Render("Canvas cleared."))
		}
		return nil

	case ActionExport:
		path := filepath.Join(s.exportDir, canvas.ExportFileName)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := s.ctl.Export(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatter.StyleDim.Render("Exported to "+path))
		return nil
	}
	return fmt.Errorf("unknown action %q", action)
}
