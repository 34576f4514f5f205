package service

import (
	"context"
	"errors"
	"fmt"

	"coursemanagement/internal/model"

	"gorm.io/gorm"
)

type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses := []model.Course{}
	if err := s.db.WithContext(ctx).Order("id").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Create(ctx context.Context, c model.Course) (model.Course, error) {
	exists, err := s.codeExists(ctx, c.Code, 0)
	if err != nil {
		return model.Course{}, err
	}
	if exists {
		return model.Course{}, newError(ErrDuplicate, "Course code already exists!")
	}

	c.ID = 0
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Course{}, fmt.Errorf("create course: %w", err)
	}
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id uint, in model.Course) (model.Course, error) {
	var c model.Course
	err := s.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Course{}, newError(ErrNotFound, "Course not found")
	}
	if err != nil {
		return model.Course{}, fmt.Errorf("find course %d: %w", id, err)
	}

	if c.Code != in.Code {
		exists, err := s.codeExists(ctx, in.Code, id)
		if err != nil {
			return model.Course{}, err
		}
		if exists {
			return model.Course{}, newError(ErrDuplicate, "Course code already exists!")
		}
	}

	c.Code = in.Code
	c.Title = in.Title
	c.Description = in.Description
	c.Credits = in.Credits
	if err := s.db.WithContext(ctx).Save(&c).Error; err != nil {
		return model.Course{}, fmt.Errorf("update course %d: %w", id, err)
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Course{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete course %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return newError(ErrNotFound, "Course not found")
	}
	return nil
}

func (s *CourseService) codeExists(ctx context.Context, code string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.Course{}).Where("course_code = ?", code)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check course code: %w", err)
	}
	return count > 0, nil
}
