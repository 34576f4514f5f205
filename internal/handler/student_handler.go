package handler

import (
	"net/http"

	"coursemanagement/internal/pkg/logger"

	"github.com/gorilla/mux"
)

type StudentHandler struct {
	svc StudentService
	l   logger.Logger
}

func NewStudentHandler(svc StudentService, l logger.Logger) *StudentHandler {
	return &StudentHandler{svc: svc, l: l}
}

// RegisterRoutes must run after the import and export handlers register
// theirs, since /students/{id} would otherwise shadow them.
func (h *StudentHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/students", h.ListStudents).Methods(http.MethodGet)
	r.HandleFunc("/students", h.CreateStudent).Methods(http.MethodPost)
	r.HandleFunc("/students/{id}", h.UpdateStudent).Methods(http.MethodPut)
	r.HandleFunc("/students/{id}", h.DeleteStudent).Methods(http.MethodDelete)
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	student, err := h.svc.Create(r.Context(), req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	var req studentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.l, err)
		return
	}
	student, err := h.svc.Update(r.Context(), id, req.toModel())
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.l, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.l, err)
		return
	}
	writeMessage(w, http.StatusOK, "Student deleted successfully")
}
