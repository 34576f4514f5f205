package handler

import (
	"net/http"

	"coursemanagement/internal/pkg/logger"

	"github.com/gorilla/mux"
)

type MarkHandler struct {
	svc MarkService
	l   logger.Logger
}

func NewMarkHandler(svc MarkService, l logger.Logger) *MarkHandler {
	return &MarkHandler{svc: svc, l: l}
}

func (h *MarkHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/marks", h.List).Methods(http.MethodGet)
	r.HandleFunc("/marks", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/marks/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/marks/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *MarkHandler) List(w http.ResponseWriter, r *http.Request) {
	marks, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, marks)
}

func (h *MarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	mark, err := h.svc.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, mark)
}

func (h *MarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	var req markRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	mark, err := h.svc.Update(r.Context(), id, req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, mark)
}

func (h *MarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.l, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
