package model

import (
	"time"

	"gorm.io/gorm"
)

type Mark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  string    `gorm:"column:student_id;not null;uniqueIndex:idx_mark_student_course" json:"studentId"`
	CourseCode string    `gorm:"column:course_code;not null;uniqueIndex:idx_mark_student_course" json:"courseCode"`
	Marks      float64   `json:"marks"`
	GPA        float64   `gorm:"column:gpa" json:"gpa"`
	Grade      string    `json:"grade"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (Mark) TableName() string {
	return "mark"
}

// BeforeSave recomputes GPA and letter grade on every create and update.
func (m *Mark) BeforeSave(tx *gorm.DB) error {
	m.GPA, m.Grade = GradeFor(m.Marks)
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}
	return nil
}

var gradeScale = []struct {
	min   float64
	gpa   float64
	grade string
}{
	{85, 4.0, "A"},
	{75, 3.5, "B+"},
	{65, 3.0, "B"},
	{55, 2.5, "C"},
	{40, 2.0, "D"},
}

// GradeFor maps a score to its GPA points and letter grade.
func GradeFor(marks float64) (float64, string) {
	for _, g := range gradeScale {
		if marks >= g.min {
			return g.gpa, g.grade
		}
	}
	return 0.0, "F"
}
