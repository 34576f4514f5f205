package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	students StudentService
	marks    MarkService
	l        logger.Logger
}

func NewExportHandler(students StudentService, marks MarkService, l logger.Logger) *ExportHandler {
	return &ExportHandler{students: students, marks: marks, l: l}
}

func (h *ExportHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/students/export", h.ExportStudents).Methods(http.MethodGet)
	r.HandleFunc("/marks/export", h.ExportMarks).Methods(http.MethodGet)
}

func (h *ExportHandler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "students", func(ctx context.Context, buf *bytes.Buffer) error {
		students, err := h.students.List(ctx)
		if err != nil {
			return err
		}
		return service.WriteStudentsWorkbook(buf, students)
	})
}

func (h *ExportHandler) ExportMarks(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "marks", func(ctx context.Context, buf *bytes.Buffer) error {
		marks, err := h.marks.List(ctx)
		if err != nil {
			return err
		}
		return service.WriteMarksWorkbook(buf, marks)
	})
}

// export buffers the workbook so a failure can still produce a JSON error.
func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, name string, build func(context.Context, *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := build(r.Context(), &buf); err != nil {
		writeError(w, h.l, err)
		return
	}

	fileName := fmt.Sprintf("%s-%s.xlsx", name, model.Today().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.l.Debug("writing export", logger.String("file", fileName), logger.Error(err))
	}
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
