package server

import (
	"net/http"

	"kamicanvas/internal/gateway/handler"
	"kamicanvas/internal/gateway/middleware"
)

func NewMux(canvasHandler *handler.CanvasHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/config", canvasHandler.HandleConfig)

	mux.HandleFunc("POST /api/canvases", canvasHandler.HandleCreate)
	mux.HandleFunc("GET /api/canvases/{id}", canvasHandler.HandleGet)
	mux.HandleFunc("GET /api/canvases/{id}/watch", canvasHandler.HandleWatch)
	mux.HandleFunc("GET /api/canvases/{id}/export", canvasHandler.HandleExport)
	mux.HandleFunc("POST /api/canvases/{id}/clear", canvasHandler.HandleClear)

	mux.HandleFunc("PUT /api/canvases/{id}/sections/{section}", canvasHandler.HandleUpdateSection)
	mux.HandleFunc("POST /api/canvases/{id}/sections/{section}/suggest", canvasHandler.HandleSuggest)
	mux.HandleFunc("GET /api/canvases/{id}/sections/{section}/preview", canvasHandler.HandlePreview)

	mux.HandleFunc("POST /api/canvases/{id}/analysis", canvasHandler.HandleAnalyze)
	mux.HandleFunc("DELETE /api/canvases/{id}/analysis", canvasHandler.HandleCloseAnalysis)

	// Middleware
	return middleware.CORS(mux)
}
