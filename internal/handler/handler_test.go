package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursemanagement/internal/database"
	"coursemanagement/internal/handler"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testRouter struct {
	*mux.Router
	importer *service.ImportService
}

func setupRouter(t *testing.T) testRouter {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	l := logger.NewNopLogger()
	courses := service.NewCourseService(db)
	students := service.NewStudentService(db)
	marks := service.NewMarkService(db)
	importer := service.NewImportService(db, service.NewMemoryProgressStore(), l, 0)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", handler.Health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	handler.NewImportHandler(importer, t.TempDir(), l).RegisterRoutes(api)
	handler.NewProgressHandler(importer, l).RegisterRoutes(api)
	handler.NewExportHandler(students, marks, l).RegisterRoutes(api)
	handler.NewCourseHandler(courses, l).RegisterRoutes(api)
	handler.NewStudentHandler(students, l).RegisterRoutes(api)
	handler.NewMarkHandler(marks, l).RegisterRoutes(api)
	return testRouter{Router: r, importer: importer}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Message
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
