package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kamicanvas/internal/assist"
	"kamicanvas/internal/canvas"
	"kamicanvas/internal/controller"
	"kamicanvas/internal/kami"
	llmclient "kamicanvas/internal/llmClient"
)

// scripted replays canned answers in order.
type scripted struct {
	actions  []Action
	sections []kami.SectionID
	texts    []string
	inputs   []string
	confirms []bool

	aiEnabled []bool
}

func (s *scripted) Action(aiEnabled bool) (Action, error) {
	s.aiEnabled = append(s.aiEnabled, aiEnabled)
	if len(s.actions) == 0 {
		return "", huh.ErrUserAborted
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

func (s *scripted) Section([]kami.Section) (kami.SectionID, error) {
	id := s.sections[0]
	s.sections = s.sections[1:]
	return id, nil
}

func (s *scripted) Text(_, _, _ string) (string, error) {
	v := s.texts[0]
	s.texts = s.texts[1:]
	return v, nil
}

func (s *scripted) Input(_, _ string) (string, error) {
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scripted) Confirm(context.Context, string) (bool, error) {
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func newTestShell(t *testing.T, llm llmclient.LLMClient, p Prompter) (*Shell, *controller.Controller, *bytes.Buffer, string) {
	t.Helper()
	var out bytes.Buffer
	ai := assist.New(llm)
	ctl := controller.New(canvas.NewStore(!ai.Available()), ai, Notifier(&out), log.New(io.Discard, "", 0))
	dir := t.TempDir()
	return NewShell(ctl, p, &out, dir), ctl, &out, dir
}

func TestShellEditSuggestExport(t *testing.T) {
	fake := llmclient.NewFakeClient()
	fake.Text = "X"
	p := &scripted{
		actions:  []Action{ActionEdit, ActionSuggest, ActionExport, ActionQuit},
		sections: []kami.SectionID{"a", "a"},
		texts:    []string{"Y"},
		inputs:   []string{""},
	}
	sh, _, out, dir := newTestShell(t, fake, p)
	require.NoError(t, sh.Run(context.Background()))

	b, err := os.ReadFile(filepath.Join(dir, canvas.ExportFileName))
	require.NoError(t, err)
	var secs []kami.Section
	require.NoError(t, json.Unmarshal(b, &secs))
	assert.Equal(t, "Y\n\n--- AI Suggestion ---\nX", secs[1].Content)
	assert.Contains(t, out.String(), "Exported to")
	assert.Equal(t, []bool{true, true, true, true}, p.aiEnabled)
}

func TestShellAnalyzeAndClear(t *testing.T) {
	fake := llmclient.NewFakeClient()
	fake.JSON = json.RawMessage(`{"score":40,"summary":"thin","strengths":[],"weaknesses":["no content"],"suggestions":["fill sections"]}`)
	p := &scripted{
		actions:  []Action{ActionEdit, ActionAnalyze, ActionClear, ActionClear},
		sections: []kami.SectionID{"k"},
		texts:    []string{"goal"},
		confirms: []bool{false, true},
	}
	sh, ctl, out, _ := newTestShell(t, fake, p)
	require.NoError(t, sh.Run(context.Background()), "abort ends the shell quietly")

	assert.Contains(t, out.String(), "40/100")
	assert.Contains(t, out.String(), "Canvas cleared.")
	assert.Equal(t, kami.DefaultSections(), ctl.Store().Sections())
	assert.Nil(t, ctl.Store().Analysis())
}

func TestShellWithoutCredentials(t *testing.T) {
	p := &scripted{
		actions:  []Action{ActionSuggest, ActionQuit},
		sections: []kami.SectionID{"m"},
		inputs:   []string{"anything"},
	}
	sh, _, out, _ := newTestShell(t, nil, p)
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Missing API_KEY")
	assert.Contains(t, out.String(), controller.NoticeCredentialsMissing)
	assert.Equal(t, []bool{false, false}, p.aiEnabled)
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "shell"}, names)
}
