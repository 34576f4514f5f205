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
	msgMarkAdded          = "Mark added successfully!"
	msgMarkUpdated        = "Mark updated successfully!"
	msgMarkDuplicate      = "Mark for this student and course already exists!"
	msgMarkSaveFailed     = "Failed to save mark"
	msgMarkSaveError      = "Error saving mark"
	msgMarkDeleted        = "Mark deleted successfully!"
	msgMarkDeleteFailed   = "Failed to delete mark"
	msgMarksFetchFailed   = "Failed to fetch marks"
	msgStudentsFetchFail  = "Failed to fetch students"
	msgCoursesFetchFailed = "Failed to fetch courses"
	msgMarksInvalid       = "Marks must be a number between 0 and 100."
)

type markForm struct {
	ID         uint
	StudentID  string
	CourseCode string
	Marks      string
}

func (f markForm) toModel() (model.Mark, string) {
	if f.StudentID == "" || f.CourseCode == "" || f.Marks == "" {
		return model.Mark{}, msgFillAllFields
	}
	marks, err := strconv.ParseFloat(f.Marks, 64)
	if err != nil || marks < 0 || marks > 100 {
		return model.Mark{}, msgMarksInvalid
	}
	return model.Mark{StudentID: f.StudentID, CourseCode: f.CourseCode, Marks: marks}, ""
}

type marksView struct {
	page
	Marks    []model.Mark
	Students []model.Student
	Courses  []model.Course
	Form     markForm
}

func (v marksView) Editing() bool {
	return v.Form.ID != 0
}

func (v marksView) StudentOptions() []option {
	return slice.Map(v.Students, func(idx int, s model.Student) option {
		return option{Value: s.StudentID, Label: s.StudentID + " - " + s.Name, Selected: s.StudentID == v.Form.StudentID}
	})
}

func (v marksView) CourseOptions() []option {
	return slice.Map(v.Courses, func(idx int, c model.Course) option {
		return option{Value: c.Code, Label: c.Label(), Selected: c.Code == v.Form.CourseCode}
	})
}

// buildMarksView fetches the three collections. The message reports the
// first one that failed to load.
func (h *Handler) buildMarksView(r *http.Request, form markForm) (marksView, string) {
	view := marksView{
		page:     newPage(r, "marks"),
		Marks:    []model.Mark{},
		Students: []model.Student{},
		Courses:  []model.Course{},
		Form:     form,
	}
	var msgs []string
	ctx := r.Context()

	if marks, err := h.api.ListMarks(ctx); err != nil {
		h.l.Warn("loading marks", logger.Error(err))
		msgs = append(msgs, msgMarksFetchFailed)
	} else {
		view.Marks = marks
	}
	if students, err := h.api.ListStudents(ctx); err != nil {
		h.l.Warn("loading students", logger.Error(err))
		msgs = append(msgs, msgStudentsFetchFail)
	} else {
		view.Students = students
	}
	if courses, err := h.api.ListCourses(ctx); err != nil {
		h.l.Warn("loading courses", logger.Error(err))
		msgs = append(msgs, msgCoursesFetchFailed)
	} else {
		view.Courses = courses
	}

	if len(msgs) == 0 {
		return view, ""
	}
	return view, msgs[0]
}

func (h *Handler) MarksPage(w http.ResponseWriter, r *http.Request) {
	view, loadMsg := h.buildMarksView(r, markForm{})
	if id := editID(r); id != 0 {
		if m, ok := slice.Find(view.Marks, func(m model.Mark) bool { return m.ID == id }); ok {
			view.Form = markForm{ID: m.ID, StudentID: m.StudentID, CourseCode: m.CourseCode, Marks: formatNumber(m.Marks)}
		}
	}
	if loadMsg != "" {
		view.Message = loadMsg
	}
	h.render(w, "marks", http.StatusOK, view)
}

func (h *Handler) SaveMark(w http.ResponseWriter, r *http.Request) {
	form := markForm{
		ID:         formID(r),
		StudentID:  strings.TrimSpace(r.PostFormValue("studentId")),
		CourseCode: strings.TrimSpace(r.PostFormValue("courseCode")),
		Marks:      strings.TrimSpace(r.PostFormValue("marks")),
	}
	view, _ := h.buildMarksView(r, form)
	fail := func(status int, msg string) {
		view.Message = msg
		h.render(w, "marks", status, view)
	}

	mark, problem := form.toModel()
	if problem != "" {
		fail(http.StatusBadRequest, problem)
		return
	}
	if isDuplicateMark(view.Marks, form.StudentID, form.CourseCode, form.ID) {
		fail(http.StatusOK, msgMarkDuplicate)
		return
	}

	var err error
	if form.ID != 0 {
		_, err = h.api.UpdateMark(r.Context(), form.ID, mark)
	} else {
		_, err = h.api.CreateMark(r.Context(), mark)
	}
	if err != nil {
		h.l.Warn("saving mark", logger.Uint("id", form.ID), logger.Error(err))
		msg := msgMarkSaveError
		if serverMsg, ok := apiMessage(err); ok {
			msg = msgMarkSaveFailed
			if serverMsg != "" {
				msg = serverMsg
			}
		}
		fail(http.StatusOK, msg)
		return
	}

	if form.ID != 0 {
		redirect(w, r, "/marks", msgMarkUpdated)
		return
	}
	redirect(w, r, "/marks", msgMarkAdded)
}

// isDuplicateMark reports whether another listed mark already holds the
// (studentId, courseCode) pair.
func isDuplicateMark(marks []model.Mark, studentID, courseCode string, editingID uint) bool {
	_, found := slice.Find(marks, func(m model.Mark) bool {
		return m.StudentID == studentID && m.CourseCode == courseCode && m.ID != editingID
	})
	return found
}

func (h *Handler) DeleteMark(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err == nil {
		err = h.api.DeleteMark(r.Context(), id)
	}
	if err != nil {
		h.l.Warn("deleting mark", logger.Error(err))
		redirect(w, r, "/marks", msgMarkDeleteFailed)
		return
	}
	redirect(w, r, "/marks", msgMarkDeleted)
}
