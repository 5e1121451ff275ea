package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/internal/domain/value"
	"anubis/pkg/errcodes"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission entity.Submission) (entity.Submission, error)
	GetByID(ctx context.Context, id string) (entity.Submission, error)
	SetResult(ctx context.Context, id string, passed, total int, testNames []string, processedAt time.Time) (entity.Submission, error)
	ListByAssignment(ctx context.Context, assignment string) ([]entity.Submission, error)
	ListByAssignmentAndStudent(ctx context.Context, assignment, netid string) ([]entity.Submission, error)
}

type GradeEnqueuer interface {
	EnqueueProcess(ctx context.Context, submissionID string) error
}

type SubmissionService struct {
	assignmentRepo AssignmentRepository
	studentRepo    StudentRepository
	submissionRepo SubmissionRepository
	enqueuer       GradeEnqueuer

	now func() time.Time
}

func NewSubmissionService(
	assignmentRepo AssignmentRepository,
	studentRepo StudentRepository,
	submissionRepo SubmissionRepository,
	enqueuer GradeEnqueuer,
) *SubmissionService {
	return &SubmissionService{
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
		submissionRepo: submissionRepo,
		enqueuer:       enqueuer,
		now:            time.Now,
	}
}

// Submit records a pending submission and hands it to the autograde queue.
func (s *SubmissionService) Submit(ctx context.Context, assignmentName, netid, commitHash string) (entity.Submission, error) {
	assignment, err := s.assignmentRepo.GetByName(ctx, assignmentName)
	if err != nil {
		return entity.Submission{}, err
	}

	if _, err := s.studentRepo.GetByNetID(ctx, netid); err != nil {
		return entity.Submission{}, err
	}

	submittedAt := s.now()
	submission := entity.Submission{
		ID:             value.NewSubmissionID().String(),
		AssignmentName: assignment.Name,
		NetID:          netid,
		CommitHash:     commitHash,
		State:          entity.SubmissionPending,
		Late:           assignment.Late(submittedAt),
		SubmittedAt:    submittedAt,
	}

	created, err := s.submissionRepo.Create(ctx, submission)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return entity.Submission{}, err
		}
		return entity.Submission{}, domain.WrapError(err, errcodes.InternalServerError, "failed to create submission")
	}

	if err := s.enqueuer.EnqueueProcess(ctx, created.ID); err != nil {
		return entity.Submission{}, domain.WrapError(err, errcodes.InternalServerError,
			fmt.Sprintf("failed to enqueue autograde for submission '%s'", created.ID))
	}

	logger(ctx).Info("submission accepted",
		"submission_id", created.ID,
		"assignment", created.AssignmentName,
		"netid", created.NetID,
		"late", created.Late,
	)

	return created, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (entity.Submission, error) {
	if _, err := value.ParseSubmissionID(id); err != nil {
		return entity.Submission{}, domain.NewError(errcodes.InvalidArgument,
			fmt.Sprintf("'%s' is not a valid submission id", id))
	}

	return s.submissionRepo.GetByID(ctx, id)
}
