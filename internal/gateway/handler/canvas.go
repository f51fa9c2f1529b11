package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"kamicanvas/internal/canvas"
	"kamicanvas/internal/controller"
	"kamicanvas/internal/gateway/session"
	"kamicanvas/internal/kami"
)

// CanvasHandler exposes canvas workflows over HTTP. AI workflows run in the
// background; clients follow progress through the watch stream.
type CanvasHandler struct {
	sessions *session.Manager
}

func NewCanvasHandler(sessions *session.Manager) *CanvasHandler {
	return &CanvasHandler{sessions: sessions}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type canvasResponse struct {
	ID string `json:"id"`
	canvas.Snapshot
}

func snapshotOf(s *session.Session) canvasResponse {
	return canvasResponse{ID: s.ID, Snapshot: s.Controller.Snapshot()}
}

func (h *CanvasHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	s, ok := h.sessions.Get(id)
	if !ok {
		http.Error(w, "canvas not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func sectionID(w http.ResponseWriter, r *http.Request) (kami.SectionID, bool) {
	id := kami.SectionID(strings.TrimSpace(r.PathValue("section")))
	if !id.Valid() {
		http.Error(w, "unknown section", http.StatusNotFound)
		return "", false
	}
	return id, true
}

// decodeBody accepts an empty body as the zero value, whether or not the
// client declared its length.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, canvas.ErrUnknownSection) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *CanvasHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"credentialsMissing": h.sessions.CredentialsMissing(),
	})
}

func (h *CanvasHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, snapshotOf(s))
}

func (h *CanvasHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshotOf(s))
}

func (h *CanvasHandler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	var in struct {
		Content *string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Content == nil {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}
	if err := s.Controller.EditSection(id, *in.Content); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, snapshotOf(s))
}

func (h *CanvasHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	id, ok := sectionID(w, r)
	if !ok {
		return
	}
	var in struct {
		Hint string `json:"hint"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if s.Controller.CredentialsMissing() {
		// Only publishes the notice; nothing to wait for.
		_ = s.Controller.RequestSuggestion(r.Context(), id, in.Hint)
		writeJSON(w, http.StatusOK, snapshotOf(s))
		return
	}
	h.sessions.Go(r.Context(), func(ctx context.Context) {
		_ = s.Controller.RequestSuggestion(ctx, id, in.Hint)
	})
	writeJSON(w, http.StatusAccepted, snapshotOf(s))
}

// HandleAnalyze is a no-op without credentials or while an analysis is
// already running, matching the disabled control in the UI.
func (h *CanvasHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if s.Controller.CredentialsMissing() || s.Controller.Snapshot().AnalysisLoading {
		writeJSON(w, http.StatusOK, snapshotOf(s))
		return
	}
	h.sessions.Go(r.Context(), func(ctx context.Context) {
		s.Controller.RequestAnalysis(ctx)
	})
	writeJSON(w, http.StatusAccepted, snapshotOf(s))
}

func (h *CanvasHandler) HandleCloseAnalysis(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	s.Controller.CloseAnalysis()
	writeJSON(w, http.StatusOK, snapshotOf(s))
}

// HandleClear expects the browser to have asked the user already; the body
// carries the answer.
func (h *CanvasHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var in struct {
		Confirm bool `json:"confirm"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	answer := controller.ConfirmFunc(func(context.Context, string) (bool, error) {
		return in.Confirm, nil
	})
	cleared, err := s.Controller.Clear(r.Context(), answer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": cleared,
		"canvas":  snapshotOf(s),
	})
}

func (h *CanvasHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	b, err := canvas.MarshalExport(s.Store().Sections())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", canvas.ExportContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+canvas.ExportFileName+`"`)
	_, _ = w.Write(b)
}
