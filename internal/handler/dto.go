package handler

import (
	"strings"

	"coursemanagement/internal/model"
)

// Numeric fields are pointers so that "required" rejects a missing value
// while still accepting 0.

type courseRequest struct {
	Code        string `json:"code" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Credits     *int   `json:"credits" validate:"required,min=0"`
}

func (r courseRequest) toModel() model.Course {
	return model.Course{
		Code:        strings.TrimSpace(r.Code),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Credits:     *r.Credits,
	}
}

type studentRequest struct {
	StudentID        string     `json:"studentId" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Email            string     `json:"email" validate:"required,email"`
	Course           string     `json:"course" validate:"required"`
	RegistrationDate model.Date `json:"registrationDate"`
}

func (r studentRequest) toModel() model.Student {
	return model.Student{
		StudentID:        strings.TrimSpace(r.StudentID),
		Name:             strings.TrimSpace(r.Name),
		Email:            strings.TrimSpace(r.Email),
		Course:           r.Course,
		RegistrationDate: r.RegistrationDate,
	}
}

// GPA and grade are accepted for compatibility but always recomputed.
type markRequest struct {
	StudentID  string   `json:"studentId" validate:"required"`
	CourseCode string   `json:"courseCode" validate:"required"`
	Marks      *float64 `json:"marks" validate:"required,min=0,max=100"`
	GPA        float64  `json:"gpa"`
	Grade      string   `json:"grade"`
}

func (r markRequest) toModel() model.Mark {
	return model.Mark{
		StudentID:  strings.TrimSpace(r.StudentID),
		CourseCode: strings.TrimSpace(r.CourseCode),
		Marks:      *r.Marks,
	}
}
