package assist

import (
	"fmt"
	"strings"

	"kamicanvas/internal/kami"
	llmclient "kamicanvas/internal/llmClient"
)

const (
	// FallbackSuggestion replaces an empty suggestion reply.
	FallbackSuggestion = "Could not generate suggestion."

	noContextPlaceholder = "No other sections filled yet."
	defaultFocus         = "General best practices based on available context."
)

func buildSuggestionPrompt(target kami.Section, all []kami.Section, hint string) string {
	var ctxParts []string
	for _, s := range all {
		if s.ID == target.ID || strings.TrimSpace(s.Content) == "" {
			continue
		}
		ctxParts = append(ctxParts, fmt.Sprintf("%s: %s", s.Title, s.Content))
	}
	contextStr := strings.Join(ctxParts, "\n\n")
	if contextStr == "" {
		contextStr = noContextPlaceholder
	}
	focus := strings.TrimSpace(hint)
	if focus == "" {
		focus = defaultFocus
	}

	var b strings.Builder
	b.WriteString("You are a strategic consultant expert in the KAMI framework (Kaji, Ambil, Modelkan, Ikat).\n\n")
	b.WriteString("Current Context from other sections:\n")
	b.WriteString(contextStr)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Task: Provide a detailed, bulleted suggestion for the %q (%s) section.\n\n", target.Title, target.Description)
	fmt.Fprintf(&b, "User specific focus: %s\n\n", focus)
	b.WriteString("Keep it concise, actionable, and professional. Return raw text with markdown formatting.\n")
	return b.String()
}

func buildAnalysisPrompt(all []kami.Section) string {
	parts := make([]string, 0, len(all))
	for _, s := range all {
		parts = append(parts, fmt.Sprintf("[%s]: %s", s.Title, s.Content))
	}

	var b strings.Builder
	b.WriteString("Analyze this strategic canvas based on the KAMI framework.\n\n")
	b.WriteString("Canvas Content:\n")
	b.WriteString(strings.Join(parts, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString("Provide a structured JSON response with a score (0-100), a short summary, list of strengths, list of weaknesses, and actionable suggestions for improvement.\n")
	return b.String()
}

// AnalysisSchema is the response schema sent with every analysis request.
func AnalysisSchema() *llmclient.Schema {
	fields := []string{"score", "summary", "strengths", "weaknesses", "suggestions"}
	return &llmclient.Schema{
		Type:  llmclient.TypeObject,
		Order: fields,
		Properties: map[string]*llmclient.Schema{
			"score":       {Type: llmclient.TypeInteger},
			"summary":     {Type: llmclient.TypeString},
			"strengths":   llmclient.StringArray(),
			"weaknesses":  llmclient.StringArray(),
			"suggestions": llmclient.StringArray(),
		},
		Required: fields,
	}
}
