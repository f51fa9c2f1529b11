package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kamicanvas/internal/canvas"
	"kamicanvas/internal/kami"
)

func TestCanvasRendersBannerAndSections(t *testing.T) {
	snap := canvas.Snapshot{Sections: kami.DefaultSections(), CredentialsMissing: true}
	snap.Sections[1].Content = "pasar tradisional"
	snap.Sections[2].IsLoading = true

	out := Canvas(snap)
	assert.Contains(t, out, "Missing API_KEY")
	assert.Contains(t, out, "Kaji Tujuan Inti")
	assert.Contains(t, out, "pasar tradisional")
	assert.Contains(t, out, "(thinking...)")
	assert.Equal(t, 3, strings.Count(out, "(empty)"))
}

func TestAnalysisStates(t *testing.T) {
	assert.Contains(t, Analysis(canvas.Snapshot{AnalysisLoading: true}), "Analyzing")
	assert.Contains(t, Analysis(canvas.Snapshot{}), "No analysis available.")

	out := Analysis(canvas.Snapshot{Analysis: &kami.AnalysisResult{
		Score:       40,
		Summary:     "thin",
		Strengths:   []string{},
		Weaknesses:  []string{"no content"},
		Suggestions: []string{"fill sections"},
	}})
	assert.Contains(t, out, "40/100")
	assert.Contains(t, out, "thin")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "no content")
	assert.Contains(t, out, "fill sections")
}
