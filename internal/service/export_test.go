package service

import (
	"bytes"
	"testing"
	"time"

	"coursemanagement/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteStudentsWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStudentsWorkbook(&buf, []model.Student{
		{StudentID: "S001", Name: "Alice", Email: "alice@uni.edu", Course: "CS101 - Intro", RegistrationDate: model.NewDate(2024, time.September, 1)},
	})
	require.NoError(t, err)

	rows := readSheet(t, &buf, "Students")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Student ID", "Name", "Email", "Course", "Registration Date"}, rows[0])
	assert.Equal(t, []string{"S001", "Alice", "alice@uni.edu", "CS101 - Intro", "2024-09-01"}, rows[1])
}

func TestWriteMarksWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMarksWorkbook(&buf, []model.Mark{
		{ID: 7, StudentID: "S001", CourseCode: "CS101", Marks: 88, GPA: 4, Grade: "A"},
	})
	require.NoError(t, err)

	rows := readSheet(t, &buf, "Marks")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "Student ID", "Course Code", "Marks", "GPA", "Grade"}, rows[0])
	assert.Equal(t, []string{"7", "S001", "CS101", "88", "4", "A"}, rows[1])
}

func TestWriteEmptyWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarksWorkbook(&buf, nil))
	rows := readSheet(t, &buf, "Marks")
	assert.Len(t, rows, 1)
}
