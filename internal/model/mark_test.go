package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		name      string
		marks     float64
		wantGPA   float64
		wantGrade string
	}{
		{"Top of scale", 100, 4.0, "A"},
		{"A boundary", 85, 4.0, "A"},
		{"Just below A", 84.99, 3.5, "B+"},
		{"B+ boundary", 75, 3.5, "B+"},
		{"B boundary", 65, 3.0, "B"},
		{"C boundary", 55, 2.5, "C"},
		{"D boundary", 40, 2.0, "D"},
		{"Just below D", 39.5, 0.0, "F"},
		{"Zero", 0, 0.0, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gpa, grade := GradeFor(tt.marks)
			assert.Equal(t, tt.wantGPA, gpa)
			assert.Equal(t, tt.wantGrade, grade)
		})
	}
}

func TestMarkBeforeSave(t *testing.T) {
	m := &Mark{StudentID: "S1", CourseCode: "CS101", Marks: 72}
	assert.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, 3.0, m.GPA)
	assert.Equal(t, "B", m.Grade)
	assert.False(t, m.RecordedAt.IsZero())

	recorded := m.RecordedAt
	m.Marks = 90
	assert.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, "A", m.Grade)
	assert.Equal(t, recorded, m.RecordedAt, "recordedAt is kept across updates")
}
