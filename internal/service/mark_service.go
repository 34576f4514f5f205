package service

import (
	"context"
	"errors"
	"fmt"

	"coursemanagement/internal/model"

	"gorm.io/gorm"
)

type MarkService struct {
	db *gorm.DB
}

func NewMarkService(db *gorm.DB) *MarkService {
	return &MarkService{db: db}
}

func (s *MarkService) List(ctx context.Context) ([]model.Mark, error) {
	marks := []model.Mark{}
	if err := s.db.WithContext(ctx).Order("id").Find(&marks).Error; err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// Create stores a mark. GPA and grade are derived in the model hook.
func (s *MarkService) Create(ctx context.Context, m model.Mark) (model.Mark, error) {
	exists, err := s.pairExists(ctx, m.StudentID, m.CourseCode, 0)
	if err != nil {
		return model.Mark{}, err
	}
	if exists {
		return model.Mark{}, newError(ErrConflict, "Mark for this student and course already exists!")
	}

	saved := model.Mark{StudentID: m.StudentID, CourseCode: m.CourseCode, Marks: m.Marks}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return model.Mark{}, fmt.Errorf("create mark: %w", err)
	}
	return saved, nil
}

func (s *MarkService) Update(ctx context.Context, id uint, in model.Mark) (model.Mark, error) {
	var m model.Mark
	err := s.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Mark{}, newError(ErrNotFound, "Mark not found")
	}
	if err != nil {
		return model.Mark{}, fmt.Errorf("find mark %d: %w", id, err)
	}

	exists, err := s.pairExists(ctx, in.StudentID, in.CourseCode, id)
	if err != nil {
		return model.Mark{}, err
	}
	if exists {
		return model.Mark{}, newError(ErrConflict, "Mark for this student and course already exists!")
	}

	m.StudentID = in.StudentID
	m.CourseCode = in.CourseCode
	m.Marks = in.Marks
	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return model.Mark{}, fmt.Errorf("update mark %d: %w", id, err)
	}
	return m, nil
}

func (s *MarkService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Mark{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete mark %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(ErrNotFound, "Mark not found")
	}
	return nil
}

func (s *MarkService) pairExists(ctx context.Context, studentID, courseCode string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.Mark{}).
		Where("student_id = ? AND course_code = ?", studentID, courseCode)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check mark: %w", err)
	}
	return count > 0, nil
}
