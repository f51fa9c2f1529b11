package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kamicanvas/internal/canvas"
	"kamicanvas/internal/kami"
)

var (
	ColorBlue    = lipgloss.Color("#60a5fa")
	ColorPurple  = lipgloss.Color("#c084fc")
	ColorEmerald = lipgloss.Color("#34d399")
	ColorRose    = lipgloss.Color("#fb7185")
	ColorRed     = lipgloss.Color("#f87171")
	ColorYellow  = lipgloss.Color("#facc15")
	ColorDim     = lipgloss.Color("#9ca3af")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorEmerald)
)

func sectionColor(key string) lipgloss.Color {
	switch key {
	case "K":
		return ColorBlue
	case "A":
		return ColorPurple
	case "M":
		return ColorEmerald
	default:
		return ColorRose
	}
}

// Section renders one section panel.
func Section(s kami.Section) string {
	color := sectionColor(s.Key)
	badge := lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + s.Key + "]")
	var b strings.Builder
	b.WriteString(badge + " " + StyleTitle.Render(s.Title))
	if s.IsLoading {
		b.WriteString(" " + StyleYellow.Render("(thinking...)"))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(s.Description))
	b.WriteString("\n\n")
	if strings.TrimSpace(s.Content) == "" {
		b.WriteString(StyleDim.Render("(empty)"))
	} else {
		b.WriteString(s.Content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(b.String())
}

// Canvas renders the banner (when credentials are missing) and every
// section in canvas order.
func Canvas(snap canvas.Snapshot) string {
	var parts []string
	parts = append(parts, StyleTitle.Render("KAMI Canvas AI")+" "+StyleDim.Render("Strategic Framework Tool"))
	if snap.CredentialsMissing {
		parts = append(parts, StyleRed.Render("Missing API_KEY: AI suggestions and analysis are disabled"))
	}
	for _, s := range snap.Sections {
		parts = append(parts, Section(s))
	}
	return strings.Join(parts, "\n")
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 50:
		return StyleYellow
	default:
		return StyleRed
	}
}

func list(title string, items []string, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(style.Bold(true).Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(StyleDim.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
	return b.String()
}

// Analysis renders the analysis view.
func Analysis(snap canvas.Snapshot) string {
	if snap.AnalysisLoading {
		return StyleYellow.Render("Analyzing strategy...")
	}
	r := snap.Analysis
	if r == nil {
		return StyleDim.Render("No analysis available.")
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Strategy Analysis") + "  ")
	b.WriteString(scoreStyle(r.Score).Bold(true).Render(fmt.Sprintf("%d/100", r.Score)))
	b.WriteString("\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\n")
	b.WriteString(list("Strengths", r.Strengths, StyleGreen))
	b.WriteString(list("Weaknesses", r.Weaknesses, StyleRed))
	b.WriteString(list("Suggestions", r.Suggestions, StyleYellow))
	return strings.TrimRight(b.String(), "\n")
}

// Notice renders a user-visible notice line.
func Notice(msg string) string {
	return StyleRed.Render("! " + msg)
}
