package web

import (
	"net/http"
	"strings"

	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"

	"github.com/ecodeclub/ekit/slice"
)

const (
	msgStudentRegistered    = "Student registered successfully!"
	msgStudentUpdated       = "Student updated successfully!"
	msgStudentDuplicateID   = "Student ID already exists! Please use a different ID."
	msgStudentSaveFailed    = "Failed to save student"
	msgStudentDeleted       = "Student deleted successfully!"
	msgStudentDeleteFailed  = "Failed to delete student"
	prefixStudentError      = "Error: "
	prefixStudentDeleteErr  = "Error deleting student: "
	prefixStudentLoadFailed = "Error loading students: "
)

type studentForm struct {
	ID        uint
	StudentID string
	Name      string
	Email     string
	Course    string
}

func (f studentForm) complete() bool {
	return f.StudentID != "" && f.Name != "" && f.Email != "" && f.Course != ""
}

func (f studentForm) toModel() model.Student {
	return model.Student{StudentID: f.StudentID, Name: f.Name, Email: f.Email, Course: f.Course}
}

type studentsView struct {
	page
	Students []model.Student
	Courses  []model.Course
	Form     studentForm
}

// CourseOptions offers every course under its "<code> - <title>" label,
// which is also what gets stored on the registration.
func (v studentsView) CourseOptions() []option {
	return slice.Map(v.Courses, func(idx int, c model.Course) option {
		return option{Value: c.Label(), Label: c.Label(), Selected: c.Label() == v.Form.Course}
	})
}

func (v studentsView) Editing() bool {
	return v.Form.ID != 0
}

// buildStudentsView fetches both collections. The returned message is the
// load failure to show, if any.
func (h *Handler) buildStudentsView(r *http.Request, form studentForm) (studentsView, string) {
	view := studentsView{page: newPage(r, "students"), Students: []model.Student{}, Courses: []model.Course{}, Form: form}
	var msg string

	students, err := h.api.ListStudents(r.Context())
	if err != nil {
		h.l.Warn("loading students", logger.Error(err))
		msg = prefixStudentLoadFailed + err.Error()
	} else {
		view.Students = students
	}

	courses, err := h.api.ListCourses(r.Context())
	if err != nil {
		h.l.Warn("loading courses", logger.Error(err))
	} else {
		view.Courses = courses
	}
	return view, msg
}

func (h *Handler) StudentsPage(w http.ResponseWriter, r *http.Request) {
	view, loadMsg := h.buildStudentsView(r, studentForm{})
	if id := editID(r); id != 0 {
		if s, ok := slice.Find(view.Students, func(s model.Student) bool { return s.ID == id }); ok {
			view.Form = studentForm{ID: s.ID, StudentID: s.StudentID, Name: s.Name, Email: s.Email, Course: s.Course}
		}
	}
	if loadMsg != "" {
		view.Message = loadMsg
	}
	h.render(w, "students", http.StatusOK, view)
}

func (h *Handler) SaveStudent(w http.ResponseWriter, r *http.Request) {
	form := studentForm{
		ID:        formID(r),
		StudentID: strings.TrimSpace(r.PostFormValue("studentId")),
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Course:    r.PostFormValue("course"),
	}
	view, _ := h.buildStudentsView(r, form)
	fail := func(status int, msg string) {
		view.Message = msg
		h.render(w, "students", status, view)
	}

	if !form.complete() {
		fail(http.StatusBadRequest, msgFillAllFields)
		return
	}
	if isDuplicateStudentID(view.Students, form.StudentID, form.ID) {
		fail(http.StatusOK, msgStudentDuplicateID)
		return
	}

	var err error
	if form.ID != 0 {
		_, err = h.api.UpdateStudent(r.Context(), form.ID, form.toModel())
	} else {
		_, err = h.api.CreateStudent(r.Context(), form.toModel())
	}
	if err != nil {
		h.l.Warn("saving student", logger.Uint("id", form.ID), logger.Error(err))
		reason := err.Error()
		if msg, ok := apiMessage(err); ok {
			reason = msgStudentSaveFailed
			if msg != "" {
				reason = msg
			}
		}
		fail(http.StatusOK, prefixStudentError+reason)
		return
	}

	if form.ID != 0 {
		redirect(w, r, "/students", msgStudentUpdated)
		return
	}
	redirect(w, r, "/students", msgStudentRegistered)
}

// isDuplicateStudentID scans the listed registrations for studentID held by
// any record other than the one being edited.
func isDuplicateStudentID(students []model.Student, studentID string, editingID uint) bool {
	_, found := slice.Find(students, func(s model.Student) bool {
		return s.StudentID == studentID && s.ID != editingID
	})
	return found
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err == nil {
		err = h.api.DeleteStudent(r.Context(), id)
	}
	if err != nil {
		h.l.Warn("deleting student", logger.Error(err))
		reason := err.Error()
		if _, ok := apiMessage(err); ok {
			reason = msgStudentDeleteFailed
		}
		redirect(w, r, "/students", prefixStudentDeleteErr+reason)
		return
	}
	redirect(w, r, "/students", msgStudentDeleted)
}
