package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"coursemanagement/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentHandler(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/students", map[string]any{
		"studentId": "S001", "name": "Alice", "email": "alice@uni.edu", "course": "CS101 - Intro",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var alice model.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alice))
	assert.Equal(t, model.Today(), alice.RegistrationDate)

	w = doJSON(t, r, http.MethodPost, "/api/students", map[string]any{
		"studentId": "S002", "name": "Bob", "email": "bob@uni.edu", "course": "CS101 - Intro", "registrationDate": "2024-09-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"registrationDate":"2024-09-01"`)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "Duplicate student ID",
			method: http.MethodPost, path: "/api/students",
			body:       map[string]any{"studentId": "S001", "name": "X", "email": "x@uni.edu", "course": "CS101 - Intro"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Student with ID S001 already exists!",
		},
		{
			name:   "Invalid email",
			method: http.MethodPost, path: "/api/students",
			body:       map[string]any{"studentId": "S003", "name": "X", "email": "not-an-email", "course": "CS101 - Intro"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email must be a valid email address",
		},
		{
			name:   "Invalid date",
			method: http.MethodPost, path: "/api/students",
			body:       map[string]any{"studentId": "S003", "name": "X", "email": "x@uni.edu", "course": "CS101", "registrationDate": "yesterday"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:   "Update missing student",
			method: http.MethodPut, path: "/api/students/999",
			body:       map[string]any{"studentId": "S999", "name": "X", "email": "x@uni.edu", "course": "CS101"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Delete missing student succeeds",
			method:     http.MethodDelete, path: "/api/students/999",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Bad id",
			method:     http.MethodDelete, path: "/api/students/x1",
			wantStatus: http.StatusBadRequest,
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

	t.Run("List", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/students", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var students []model.Student
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &students))
		require.Len(t, students, 2)
		assert.Equal(t, "S001", students[0].StudentID)
	})
}
