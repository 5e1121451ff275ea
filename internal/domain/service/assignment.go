package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment entity.Assignment) (entity.Assignment, error)
	List(ctx context.Context) ([]entity.Assignment, error)
	GetByName(ctx context.Context, name string) (entity.Assignment, error)
}

type AssignmentService struct {
	repository AssignmentRepository
}

func NewAssignmentService(repository AssignmentRepository) *AssignmentService {
	return &AssignmentService{repository: repository}
}

func (s *AssignmentService) Add(ctx context.Context, name string, releaseAt, dueAt time.Time) (entity.Assignment, error) {
	if name == "" {
		return entity.Assignment{}, domain.NewError(errcodes.InvalidArgument, "assignment name is required")
	}
	if !releaseAt.Before(dueAt) {
		return entity.Assignment{}, domain.NewError(errcodes.InvalidTimeRange,
			fmt.Sprintf("assignment '%s' release must precede due date", name))
	}

	created, err := s.repository.Create(ctx, entity.Assignment{
		Name:      name,
		ReleaseAt: releaseAt,
		DueAt:     dueAt,
	})
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return entity.Assignment{}, err
		}
		return entity.Assignment{}, domain.WrapError(err, errcodes.InternalServerError,
			fmt.Sprintf("failed to create assignment '%s'", name))
	}

	return created, nil
}

func (s *AssignmentService) List(ctx context.Context) ([]entity.Assignment, error) {
	return s.repository.List(ctx)
}
