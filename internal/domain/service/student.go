package service

import (
	"context"
	"errors"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/contextx"
	"anubis/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type StudentRepository interface {
	BulkUpsert(ctx context.Context, students []entity.Student) ([]entity.Student, error)
	List(ctx context.Context) ([]entity.Student, error)
	GetByNetID(ctx context.Context, netid string) (entity.Student, error)
}

type StudentService struct {
	repository StudentRepository
}

func NewStudentService(repository StudentRepository) *StudentService {
	return &StudentService{repository: repository}
}

// Load upserts a roster. An empty roster is rejected so a mistyped file
// path does not silently succeed.
func (s *StudentService) Load(ctx context.Context, students []entity.Student) ([]entity.Student, error) {
	if len(students) == 0 {
		return nil, domain.NewError(errcodes.InvalidArgument, "student roster is empty")
	}

	loaded, err := s.repository.BulkUpsert(ctx, students)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to load students")
	}

	logger(ctx).Info("student roster loaded", "count", len(loaded))
	return loaded, nil
}

func (s *StudentService) List(ctx context.Context) ([]entity.Student, error) {
	return s.repository.List(ctx)
}
