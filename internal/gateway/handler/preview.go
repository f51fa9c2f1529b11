package handler

import (
	"bytes"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Suggestions come back as markdown-flavored text; the preview renders a
// section's content for display. Raw HTML in the content is not passed
// through.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(src string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *CanvasHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	sec, err := s.Store().Section(id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	html, err := renderMarkdown(sec.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}
