package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"coursemanagement/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkHandler(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/marks", map[string]any{
		"studentId": "S001", "courseCode": "CS101", "marks": 72, "gpa": 4.0, "grade": "A",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var mark model.Mark
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mark))
	assert.Equal(t, 3.0, mark.GPA)
	assert.Equal(t, "B", mark.Grade)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "Duplicate pair",
			method: http.MethodPost, path: "/api/marks",
			body:       map[string]any{"studentId": "S001", "courseCode": "CS101", "marks": 50},
			wantStatus: http.StatusConflict,
			wantMsg:    "Mark for this student and course already exists!",
		},
		{
			name:   "Marks above range",
			method: http.MethodPost, path: "/api/marks",
			body:       map[string]any{"studentId": "S002", "courseCode": "CS101", "marks": 101},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "marks must be at most 100",
		},
		{
			name:   "Missing marks",
			method: http.MethodPost, path: "/api/marks",
			body:       map[string]any{"studentId": "S002", "courseCode": "CS101"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "marks is required",
		},
		{
			name:   "Update missing mark",
			method: http.MethodPut, path: "/api/marks/999",
			body:       map[string]any{"studentId": "S002", "courseCode": "CS101", "marks": 50},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Delete missing mark",
			method:     http.MethodDelete, path: "/api/marks/999",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeMessage(t, w))
			}
		})
	}

	t.Run("Zero marks is accepted", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/marks/1", map[string]any{
			"studentId": "S001", "courseCode": "CS101", "marks": 0,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var updated model.Mark
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "F", updated.Grade)
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/marks/1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
