package controller

import (
	"context"
	"io"
	"log"

	"kamicanvas/internal/assist"
	"kamicanvas/internal/canvas"
	"kamicanvas/internal/kami"
)

// User-visible notices. They stay generic; causes go to the log.
const (
	NoticeCredentialsMissing = "API Key is missing in environment variables."
	NoticeSuggestionFailed   = "Failed to get suggestion. Check the server log."
	NoticeAnalysisFailed     = "Failed to analyze the canvas. Check the server log."

	ClearPrompt = "Clear all sections?"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Controller sequences store transitions with assistant calls. AI failures
// never leave it as errors: they become a notice and a log line.
type Controller struct {
	store  *canvas.Store
	ai     *assist.Client
	notify Notifier
	log    *log.Logger
}

func New(store *canvas.Store, ai *assist.Client, notify Notifier, logger *log.Logger) *Controller {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{store: store, ai: ai, notify: notify, log: logger}
}

func (c *Controller) Store() *canvas.Store { return c.store }

func (c *Controller) Snapshot() canvas.Snapshot { return c.store.Snapshot() }

// CredentialsMissing drives the banner and the disabled analysis control.
func (c *Controller) CredentialsMissing() bool {
	return c.store.CredentialsMissing() || !c.ai.Available()
}

// EditSection applies a content change directly.
func (c *Controller) EditSection(id kami.SectionID, content string) error {
	return c.store.UpdateContent(id, content)
}

// RequestSuggestion asks the assistant for a suggestion for id and merges it
// into the section. Only an unknown section id is returned as an error.
func (c *Controller) RequestSuggestion(ctx context.Context, id kami.SectionID, hint string) error {
	target, err := c.store.Section(id)
	if err != nil {
		return err
	}
	if c.CredentialsMissing() {
		c.notify.Notify(NoticeCredentialsMissing)
		return nil
	}
	all := c.store.Sections()

	release, err := c.store.BeginSectionRequest(id)
	if err != nil {
		return err
	}
	defer release()

	suggestion, err := c.ai.SuggestSection(ctx, target, all, hint)
	if err != nil {
		c.log.Printf("suggestion for section %s failed: %v", id, err)
		c.notify.Notify(NoticeSuggestionFailed)
		return nil
	}
	return c.store.ModifyContent(id, func(current string) string {
		return assist.MergeSuggestion(current, suggestion)
	})
}

// RequestAnalysis evaluates the whole canvas. Without credentials it does
// nothing, not even opening the analysis view.
func (c *Controller) RequestAnalysis(ctx context.Context) {
	if c.CredentialsMissing() {
		return
	}
	c.store.SetAnalysisOpen(true)
	c.store.SetAnalysisLoading(true)
	defer c.store.SetAnalysisLoading(false)

	res, err := c.ai.AnalyzeCanvas(ctx, c.store.Sections())
	if err != nil {
		c.log.Printf("canvas analysis failed: %v", err)
		c.store.SetAnalysis(nil)
		c.notify.Notify(NoticeAnalysisFailed)
		return
	}
	c.store.SetAnalysis(&res)
}

// CloseAnalysis hides the analysis view; the result is kept.
func (c *Controller) CloseAnalysis() {
	c.store.SetAnalysisOpen(false)
}

// Clear resets the canvas after confirm agrees. It reports whether the
// canvas was cleared.
func (c *Controller) Clear(ctx context.Context, confirm Confirmer) (bool, error) {
	if confirm == nil {
		return false, nil
	}
	ok, err := confirm.Confirm(ctx, ClearPrompt)
	if err != nil || !ok {
		return false, err
	}
	c.store.Initialize()
	return true, nil
}

// Export writes the sections as the kami-canvas.json document.
func (c *Controller) Export(w io.Writer) error {
	return canvas.WriteExport(w, c.store)
}
