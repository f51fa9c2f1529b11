package kami

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AnalysisResult is the holistic evaluation of a canvas. Values are kept as
// returned by the model; the score range is not enforced.
type AnalysisResult struct {
	Score       int      `json:"score"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

var analysisFields = []string{"score", "summary", "strengths", "weaknesses", "suggestions"}

// ErrMissingField is returned by ParseAnalysis when a required field is absent
// or null.
var ErrMissingField = errors.New("analysis: missing required field")

// ParseAnalysis decodes raw into an AnalysisResult, checking that every
// required field is present before trusting the decoded value.
func ParseAnalysis(raw []byte) (AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: decode object: %w", err)
	}
	for _, name := range analysisFields {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return AnalysisResult{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}
	var out AnalysisResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return AnalysisResult{}, fmt.Errorf("analysis: decode fields: %w", err)
	}
	return out, nil
}

// Clone returns a deep copy so callers can hand results across goroutines.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Strengths = cloneStrings(r.Strengths)
	out.Weaknesses = cloneStrings(r.Weaknesses)
	out.Suggestions = cloneStrings(r.Suggestions)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
