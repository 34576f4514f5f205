package service

import (
	"context"
	"errors"
	"fmt"

	"coursemanagement/internal/model"

	"gorm.io/gorm"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students := []model.Student{}
	if err := s.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *StudentService) Create(ctx context.Context, st model.Student) (model.Student, error) {
	if err := s.checkUnique(ctx, st, 0); err != nil {
		return model.Student{}, err
	}

	st.ID = 0
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return model.Student{}, fmt.Errorf("create student: %w", err)
	}
	return st, nil
}

// Update overwrites the editable fields. A zero registration date keeps the
// stored one.
func (s *StudentService) Update(ctx context.Context, id uint, in model.Student) (model.Student, error) {
	var st model.Student
	err := s.db.WithContext(ctx).First(&st, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Student{}, newError(ErrNotFound, "Student not found")
	}
	if err != nil {
		return model.Student{}, fmt.Errorf("find student %d: %w", id, err)
	}

	if err := s.checkUnique(ctx, in, id); err != nil {
		return model.Student{}, err
	}

	st.StudentID = in.StudentID
	st.Name = in.Name
	st.Email = in.Email
	st.Course = in.Course
	if !in.RegistrationDate.IsZero() {
		st.RegistrationDate = in.RegistrationDate
	}
	if err := s.db.WithContext(ctx).Save(&st).Error; err != nil {
		return model.Student{}, fmt.Errorf("update student %d: %w", id, err)
	}
	return st, nil
}

// Delete removes the registration. Unknown ids are not an error.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&model.Student{}, id).Error; err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return nil
}

func (s *StudentService) checkUnique(ctx context.Context, st model.Student, excludeID uint) error {
	taken, err := s.taken(ctx, "student_id", st.StudentID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return newError(ErrDuplicate, "Student with ID %s already exists!", st.StudentID)
	}

	taken, err = s.taken(ctx, "email", st.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return newError(ErrDuplicate, "Student with email %s already exists!", st.Email)
	}
	return nil
}

func (s *StudentService) taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.Student{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check student %s: %w", column, err)
	}
	return count > 0, nil
}
