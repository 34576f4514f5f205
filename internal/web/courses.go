package web

import (
	"net/http"
	"strconv"
	"strings"

	"coursemanagement/internal/model"
	"coursemanagement/internal/pkg/logger"

	"github.com/ecodeclub/ekit/slice"
)

const (
	msgCourseAdded         = "Course added successfully!"
	msgCourseUpdated       = "Course updated successfully!"
	msgCourseSaveFailed    = "Something went wrong. Please try again."
	msgCourseDeleted       = "Course deleted successfully!"
	msgCourseDeleteFailed  = "Failed to delete course. Please try again."
	msgFillAllFields       = "Please fill in all fields."
	msgCreditsInvalid      = "Credits must be a whole number of 0 or more."
	courseCodeErrorKeyword = "Course code"
)

type courseForm struct {
	ID          uint
	Code        string
	Title       string
	Description string
	Credits     string
}

func courseFormFrom(c model.Course) courseForm {
	return courseForm{ID: c.ID, Code: c.Code, Title: c.Title, Description: c.Description, Credits: strconv.Itoa(c.Credits)}
}

func (f courseForm) toModel() (model.Course, string) {
	if f.Code == "" || f.Title == "" || strings.TrimSpace(f.Description) == "" || f.Credits == "" {
		return model.Course{}, msgFillAllFields
	}
	credits, err := strconv.Atoi(f.Credits)
	if err != nil || credits < 0 {
		return model.Course{}, msgCreditsInvalid
	}
	return model.Course{Code: f.Code, Title: f.Title, Description: f.Description, Credits: credits}, ""
}

type coursesView struct {
	page
	Courses []model.Course
	Form    courseForm
}

func (v coursesView) Editing() bool {
	return v.Form.ID != 0
}

func (h *Handler) loadCourses(r *http.Request) []model.Course {
	courses, err := h.api.ListCourses(r.Context())
	if err != nil {
		h.l.Warn("loading courses", logger.Error(err))
		return []model.Course{}
	}
	return courses
}

func (h *Handler) CoursesPage(w http.ResponseWriter, r *http.Request) {
	view := coursesView{page: newPage(r, "courses"), Courses: h.loadCourses(r)}
	if id := editID(r); id != 0 {
		if c, ok := slice.Find(view.Courses, func(c model.Course) bool { return c.ID == id }); ok {
			view.Form = courseFormFrom(c)
		}
	}
	h.render(w, "courses", http.StatusOK, view)
}

func (h *Handler) SaveCourse(w http.ResponseWriter, r *http.Request) {
	form := courseForm{
		ID:          formID(r),
		Code:        strings.TrimSpace(r.PostFormValue("code")),
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		Credits:     strings.TrimSpace(r.PostFormValue("credits")),
	}
	fail := func(status int, msg string) {
		view := coursesView{page: newPage(r, "courses"), Courses: h.loadCourses(r), Form: form}
		view.Message = msg
		h.render(w, "courses", status, view)
	}

	course, problem := form.toModel()
	if problem != "" {
		fail(http.StatusBadRequest, problem)
		return
	}

	var err error
	if form.ID != 0 {
		_, err = h.api.UpdateCourse(r.Context(), form.ID, course)
	} else {
		_, err = h.api.CreateCourse(r.Context(), course)
	}
	if err != nil {
		h.l.Warn("saving course", logger.Uint("id", form.ID), logger.Error(err))
		msg := msgCourseSaveFailed
		if strings.Contains(err.Error(), courseCodeErrorKeyword) {
			msg = err.Error()
		}
		fail(http.StatusOK, msg)
		return
	}

	if form.ID != 0 {
		redirect(w, r, "/", msgCourseUpdated)
		return
	}
	redirect(w, r, "/", msgCourseAdded)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err == nil {
		err = h.api.DeleteCourse(r.Context(), id)
	}
	if err != nil {
		h.l.Warn("deleting course", logger.Error(err))
		redirect(w, r, "/", msgCourseDeleteFailed)
		return
	}
	redirect(w, r, "/", msgCourseDeleted)
}
