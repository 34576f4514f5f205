package handler

import (
	"context"

	"coursemanagement/internal/model"
	"coursemanagement/internal/service"
)

type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, c model.Course) (model.Course, error)
	Update(ctx context.Context, id uint, c model.Course) (model.Course, error)
	Delete(ctx context.Context, id uint) error
}

type StudentService interface {
	List(ctx context.Context) ([]model.Student, error)
	Create(ctx context.Context, s model.Student) (model.Student, error)
	Update(ctx context.Context, id uint, s model.Student) (model.Student, error)
	Delete(ctx context.Context, id uint) error
}

type MarkService interface {
	List(ctx context.Context) ([]model.Mark, error)
	Create(ctx context.Context, m model.Mark) (model.Mark, error)
	Update(ctx context.Context, id uint, m model.Mark) (model.Mark, error)
	Delete(ctx context.Context, id uint) error
}

type Importer interface {
	ProcessFile(ctx context.Context, filePath string) error
}

type ProgressReporter interface {
	GetFileProgress(ctx context.Context, fileName string) (*service.ProgressInfo, error)
	GetAllFileProgress(ctx context.Context) ([]service.ProgressInfo, error)
	RegisterProgressListener(ch chan service.ProgressInfo)
	UnregisterProgressListener(ch chan service.ProgressInfo)
}
