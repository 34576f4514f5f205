package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coursemanagement/internal/handler"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ProcessFile(ctx context.Context, filePath string) error {
	args := m.Called(ctx, filePath)
	return args.Error(0)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	processed := make(chan string, 2)
	mockImporter := new(MockImporter)
	mockImporter.On("ProcessFile", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { processed <- args.String(1) }).
		Return(nil)
	h := handler.NewImportHandler(mockImporter, dir, logger.NewNopLogger())

	body, contentType := multipartBody(t, map[string]string{
		"students.csv": "studentId,name,email,course\nS001,Alice,alice@uni.edu,CS101",
		"notes.txt":    "ignored",
	})
	req := httptest.NewRequest(http.MethodPost, "/students/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.Upload(w, req)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	var resp struct {
		Message string   `json:"message"`
		Files   []string `json:"files"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Files uploaded successfully and processing started", resp.Message)
	assert.Equal(t, []string{"students.csv"}, resp.Files)

	select {
	case path := <-processed:
		assert.Equal(t, filepath.Join(dir, "students.csv"), path)
	case <-time.After(time.Second):
		t.Fatal("import was not started")
	}
	saved, err := os.ReadFile(filepath.Join(dir, "students.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "S001,Alice")
}

func TestUploadRejects(t *testing.T) {
	mockImporter := new(MockImporter)
	h := handler.NewImportHandler(mockImporter, t.TempDir(), logger.NewNopLogger())

	t.Run("No files", func(t *testing.T) {
		body, contentType := multipartBody(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/students/import", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Only unsupported files", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"students.json": "{}"})
		req := httptest.NewRequest(http.MethodPost, "/students/import", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/students/import", bytes.NewBufferString("plain"))
		w := httptest.NewRecorder()
		h.Upload(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	mockImporter.AssertNotCalled(t, "ProcessFile", mock.Anything, mock.Anything)
}

// End to end through the real importer and progress endpoints.
func TestUploadAndTrackProgress(t *testing.T) {
	r := setupRouter(t)

	body, contentType := multipartBody(t, map[string]string{
		"batch.csv": "studentId,name,email,course\nS001,Alice,alice@uni.edu,CS101\nS002,Bob,bob@uni.edu,CS101\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/students/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	require.Eventually(t, func() bool {
		p, err := r.importer.GetFileProgress(context.Background(), "batch.csv")
		return err == nil && p != nil && p.Status == service.StatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	w = doJSON(t, r, http.MethodGet, "/api/students/import/progress/file?fileName=batch.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var progress service.ProgressInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, 2, progress.Imported)

	w = doJSON(t, r, http.MethodGet, "/api/students", nil)
	assert.Contains(t, w.Body.String(), `"studentId":"S002"`)
}
