package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/gorilla/mux"
)

type ProgressHandler struct {
	progress ProgressReporter
	l        logger.Logger
}

func NewProgressHandler(progress ProgressReporter, l logger.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, l: l}
}

func (h *ProgressHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/students/import/progress", h.GetAllProgress).Methods(http.MethodGet)
	r.HandleFunc("/students/import/progress/file", h.GetFileProgress).Methods(http.MethodGet)
	r.HandleFunc("/students/import/events", h.SSEProgress).Methods(http.MethodGet)
}

// GetFileProgress returns the progress for a specific file
func (h *ProgressHandler) GetFileProgress(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	if fileName == "" {
		writeMessage(w, http.StatusBadRequest, "fileName parameter is required")
		return
	}

	progress, err := h.progress.GetFileProgress(r.Context(), filepath.Base(fileName))
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	if progress == nil {
		writeMessage(w, http.StatusNotFound, "File not found or not being processed")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// GetAllProgress returns the progress for all known files
func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.GetAllFileProgress(r.Context())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SSEProgress streams progress updates until the client disconnects.
func (h *ProgressHandler) SSEProgress(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	progressChan := make(chan service.ProgressInfo, 16)
	h.progress.RegisterProgressListener(progressChan)
	defer h.progress.UnregisterProgressListener(progressChan)

	for {
		select {
		case progress := <-progressChan:
			data, err := json.Marshal(progress)
			if err != nil {
				h.l.Error("marshaling progress", logger.Error(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				h.l.Debug("writing SSE data", logger.Error(err))
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
