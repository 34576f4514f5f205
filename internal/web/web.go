// Package web renders the admin screens for courses, student
// registrations and marks. It reaches the records only through the REST
// API.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"coursemanagement/internal/client"
	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

// API is the subset of the REST client the screens use.
type API interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	CreateCourse(ctx context.Context, c model.Course) (model.Course, error)
	UpdateCourse(ctx context.Context, id uint, c model.Course) (model.Course, error)
	DeleteCourse(ctx context.Context, id uint) error

	ListStudents(ctx context.Context) ([]model.Student, error)
	CreateStudent(ctx context.Context, s model.Student) (model.Student, error)
	UpdateStudent(ctx context.Context, id uint, s model.Student) (model.Student, error)
	DeleteStudent(ctx context.Context, id uint) error

	ListMarks(ctx context.Context) ([]model.Mark, error)
	CreateMark(ctx context.Context, m model.Mark) (model.Mark, error)
	UpdateMark(ctx context.Context, id uint, m model.Mark) (model.Mark, error)
	DeleteMark(ctx context.Context, id uint) error
}

type Handler struct {
	api   API
	l     logger.Logger
	pages map[string]*template.Template
}

func NewHandler(api API, l logger.Logger) (*Handler, error) {
	h := &Handler{api: api, l: l, pages: make(map[string]*template.Template)}
	for _, name := range []string{"courses", "students", "marks"} {
		t, err := template.New(name).Funcs(templateFuncs()).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		h.pages[name] = t
	}
	return h, nil
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.CoursesPage).Methods(http.MethodGet)
	r.HandleFunc("/courses", h.SaveCourse).Methods(http.MethodPost)
	r.HandleFunc("/courses/{id}/delete", h.DeleteCourse).Methods(http.MethodPost)

	r.HandleFunc("/students", h.StudentsPage).Methods(http.MethodGet)
	r.HandleFunc("/students", h.SaveStudent).Methods(http.MethodPost)
	r.HandleFunc("/students/{id}/delete", h.DeleteStudent).Methods(http.MethodPost)

	r.HandleFunc("/marks", h.MarksPage).Methods(http.MethodGet)
	r.HandleFunc("/marks", h.SaveMark).Methods(http.MethodPost)
	r.HandleFunc("/marks/{id}/delete", h.DeleteMark).Methods(http.MethodPost)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num": formatNumber,
		"orDash": func(v any) string {
			switch x := v.(type) {
			case float64:
				if x == 0 {
					return "-"
				}
				return formatNumber(x)
			case string:
				if x == "" {
					return "-"
				}
				return x
			}
			return fmt.Sprint(v)
		},
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// page is embedded by every screen's view model.
type page struct {
	Active   string
	Path     string
	Message  string
	DeleteID uint
}

// Noun names one record of the active screen in dialogs.
func (p page) Noun() string {
	return strings.TrimSuffix(p.Active, "s")
}

func newPage(r *http.Request, active string) page {
	p := page{Active: active, Path: r.URL.Path, Message: r.URL.Query().Get("msg")}
	if id, err := strconv.ParseUint(r.URL.Query().Get("delete"), 10, 64); err == nil {
		p.DeleteID = uint(id)
	}
	return p
}

// editID is the ?edit= target, or 0 in add mode.
func editID(r *http.Request) uint {
	id, _ := strconv.ParseUint(r.URL.Query().Get("edit"), 10, 64)
	return uint(id)
}

func formID(r *http.Request) uint {
	id, _ := strconv.ParseUint(r.PostFormValue("id"), 10, 64)
	return uint(id)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func (h *Handler) render(w http.ResponseWriter, name string, status int, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.l.Error("rendering page", logger.String("page", name), logger.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect reloads path with msg shown in the message dialog.
func redirect(w http.ResponseWriter, r *http.Request, path, msg string) {
	target := path
	if msg != "" {
		target += "?" + url.Values{"msg": {msg}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// apiMessage returns the server's message when err is an API answer.
func apiMessage(err error) (string, bool) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}

type option struct {
	Value    string
	Label    string
	Selected bool
}
