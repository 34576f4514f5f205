package handler

import (
	"net/http"

	"coursemanagement/internal/pkg/logger"

	"github.com/gorilla/mux"
)

type CourseHandler struct {
	svc CourseService
	l   logger.Logger
}

func NewCourseHandler(svc CourseService, l logger.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, l: l}
}

func (h *CourseHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/courses", h.List).Methods(http.MethodGet)
	r.HandleFunc("/courses", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/courses/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/courses/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	course, err := h.svc.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	var req courseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	course, err := h.svc.Update(r.Context(), id, req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.l, err)
		return
	}
	writeMessage(w, http.StatusOK, "Course deleted successfully")
}
