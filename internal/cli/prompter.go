package cli

import (
	"context"

	"github.com/charmbracelet/huh"

	"kamicanvas/internal/kami"
)

type Action string

const (
	ActionEdit    Action = "edit"
	ActionSuggest Action = "suggest"
	ActionAnalyze Action = "analyze"
	ActionClear   Action = "clear"
	ActionExport  Action = "export"
	ActionQuit    Action = "quit"
)

// Prompter collects user input for the shell.
type Prompter interface {
	Action(aiEnabled bool) (Action, error)
	Section(sections []kami.Section) (kami.SectionID, error)
	Text(title, description, current string) (string, error)
	Input(title, placeholder string) (string, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// huhPrompter drives the shell with huh forms.
type huhPrompter struct{}

func (huhPrompter) Action(aiEnabled bool) (Action, error) {
	opts := []huh.Option[Action]{huh.NewOption("Edit a section", ActionEdit)}
	if aiEnabled {
		opts = append(opts,
			huh.NewOption("Ask AI for a section suggestion", ActionSuggest),
			huh.NewOption("Analyze strategy", ActionAnalyze),
		)
	}
	opts = append(opts,
		huh.NewOption("Clear canvas", ActionClear),
		huh.NewOption("Export JSON", ActionExport),
		huh.NewOption("Quit", ActionQuit),
	)
	var a Action
	err := huh.NewSelect[Action]().
		Title("What next?").
		Options(opts...).
		Value(&a).
		Run()
	return a, err
}

func (huhPrompter) Section(sections []kami.Section) (kami.SectionID, error) {
	opts := make([]huh.Option[kami.SectionID], 0, len(sections))
	for _, s := range sections {
		opts = append(opts, huh.NewOption(s.Key+" · "+s.Title, s.ID))
	}
	var id kami.SectionID
	err := huh.NewSelect[kami.SectionID]().
		Title("Section").
		Options(opts...).
		Value(&id).
		Run()
	return id, err
}

func (huhPrompter) Text(title, description, current string) (string, error) {
	v := current
	err := huh.NewText().
		Title(title).
		Description(description).
		Lines(8).
		Value(&v).
		Run()
	return v, err
}

func (huhPrompter) Input(title, placeholder string) (string, error) {
	var v string
	err := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&v).
		Run()
	return v, err
}

func (huhPrompter) Confirm(_ context.Context, prompt string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Clear").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}
