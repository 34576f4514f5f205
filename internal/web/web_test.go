package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListCourses(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]model.Course)
	return courses, args.Error(1)
}

func (m *MockAPI) CreateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	args := m.Called(ctx, c)
	return c, args.Error(0)
}

func (m *MockAPI) UpdateCourse(ctx context.Context, id uint, c model.Course) (model.Course, error) {
	args := m.Called(ctx, id, c)
	return c, args.Error(0)
}

func (m *MockAPI) DeleteCourse(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListStudents(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	students, _ := args.Get(0).([]model.Student)
	return students, args.Error(1)
}

func (m *MockAPI) CreateStudent(ctx context.Context, s model.Student) (model.Student, error) {
	args := m.Called(ctx, s)
	return s, args.Error(0)
}

func (m *MockAPI) UpdateStudent(ctx context.Context, id uint, s model.Student) (model.Student, error) {
	args := m.Called(ctx, id, s)
	return s, args.Error(0)
}

func (m *MockAPI) DeleteStudent(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListMarks(ctx context.Context) ([]model.Mark, error) {
	args := m.Called(ctx)
	marks, _ := args.Get(0).([]model.Mark)
	return marks, args.Error(1)
}

func (m *MockAPI) CreateMark(ctx context.Context, mk model.Mark) (model.Mark, error) {
	args := m.Called(ctx, mk)
	return mk, args.Error(0)
}

func (m *MockAPI) UpdateMark(ctx context.Context, id uint, mk model.Mark) (model.Mark, error) {
	args := m.Called(ctx, id, mk)
	return mk, args.Error(0)
}

func (m *MockAPI) DeleteMark(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func newTestRouter(t *testing.T, api API) *mux.Router {
	t.Helper()
	h, err := NewHandler(api, logger.NewNopLogger())
	require.NoError(t, err)
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// redirectMessage returns the msg carried by a 303 response.
func redirectMessage(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return loc.Path, loc.Query().Get("msg")
}
