package service

import (
	"fmt"
	"io"

	"coursemanagement/internal/model"

	"github.com/ecodeclub/ekit/slice"
	"github.com/xuri/excelize/v2"
)

var (
	studentColumns = []any{"Student ID", "Name", "Email", "Course", "Registration Date"}
	markColumns    = []any{"ID", "Student ID", "Course Code", "Marks", "GPA", "Grade"}
)

// WriteStudentsWorkbook writes the registrations as an xlsx workbook with
// the same columns as the student list.
func WriteStudentsWorkbook(w io.Writer, students []model.Student) error {
	rows := slice.Map(students, func(idx int, src model.Student) []any {
		return []any{src.StudentID, src.Name, src.Email, src.Course, src.RegistrationDate.String()}
	})
	return writeWorkbook(w, "Students", studentColumns, rows)
}

func WriteMarksWorkbook(w io.Writer, marks []model.Mark) error {
	rows := slice.Map(marks, func(idx int, src model.Mark) []any {
		return []any{src.ID, src.StudentID, src.CourseCode, src.Marks, src.GPA, src.Grade}
	})
	return writeWorkbook(w, "Marks", markColumns, rows)
}

func writeWorkbook(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
