package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// submissionRow mirrors entity.Submission with the driver type for the
// text[] column.
type submissionRow struct {
	ID             string         `db:"id"`
	AssignmentName string         `db:"assignment_name"`
	NetID          string         `db:"netid"`
	CommitHash     string         `db:"commit_hash"`
	State          string         `db:"state"`
	TestsPassed    int            `db:"tests_passed"`
	TestsTotal     int            `db:"tests_total"`
	TestNames      pq.StringArray `db:"test_names"`
	Late           bool           `db:"late"`
	SubmittedAt    time.Time      `db:"submitted_at"`
	ProcessedAt    *time.Time     `db:"processed_at"`
}

func (row submissionRow) toEntity() entity.Submission {
	return entity.Submission{
		ID:             row.ID,
		AssignmentName: row.AssignmentName,
		NetID:          row.NetID,
		CommitHash:     row.CommitHash,
		State:          row.State,
		TestsPassed:    row.TestsPassed,
		TestsTotal:     row.TestsTotal,
		TestNames:      row.TestNames,
		Late:           row.Late,
		SubmittedAt:    row.SubmittedAt,
		ProcessedAt:    row.ProcessedAt,
	}
}

const submissionColumns = `id, assignment_name, netid, commit_hash, state,
       tests_passed, tests_total, test_names, late, submitted_at, processed_at`

func (r *SubmissionRepository) Create(ctx context.Context, submission entity.Submission) (entity.Submission, error) {
	query := `
        INSERT INTO submissions (id, assignment_name, netid, commit_hash, state, late, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + submissionColumns + `;
    `

	var row submissionRow
	err := r.db.GetContext(ctx, &row, query,
		submission.ID, submission.AssignmentName, submission.NetID,
		submission.CommitHash, submission.State, submission.Late, submission.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entity.Submission{}, domain.NewError(errcodes.SubmissionExists,
				fmt.Sprintf("submission with id '%s' already exists", submission.ID))
		}
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return entity.Submission{}, domain.NewError(errcodes.NotFound,
				"assignment or student for this submission not found")
		}
		return entity.Submission{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to create submission")
	}

	return row.toEntity(), nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (entity.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	var row submissionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Submission{}, domain.NewError(errcodes.NotFound,
				fmt.Sprintf("submission with id '%s' not found", id))
		}
		return entity.Submission{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to get submission")
	}

	return row.toEntity(), nil
}

// SetResult records the autograde outcome and flips the submission to
// PROCESSED.
func (r *SubmissionRepository) SetResult(ctx context.Context, id string, passed, total int, testNames []string, processedAt time.Time) (entity.Submission, error) {
	query := `
        UPDATE submissions
        SET state = $1, tests_passed = $2, tests_total = $3, test_names = $4, processed_at = $5
        WHERE id = $6
        RETURNING ` + submissionColumns + `;
    `

	var row submissionRow
	err := r.db.GetContext(ctx, &row, query,
		entity.SubmissionProcessed, passed, total, pq.Array(testNames), processedAt, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Submission{}, domain.NewError(errcodes.NotFound,
				fmt.Sprintf("submission with id '%s' not found", id))
		}
		return entity.Submission{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to set submission result")
	}

	return row.toEntity(), nil
}

func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignment string) ([]entity.Submission, error) {
	query := `SELECT ` + submissionColumns + `
        FROM submissions WHERE assignment_name = $1
        ORDER BY netid, submitted_at`

	return r.list(ctx, query, assignment)
}

func (r *SubmissionRepository) ListByAssignmentAndStudent(ctx context.Context, assignment, netid string) ([]entity.Submission, error) {
	query := `SELECT ` + submissionColumns + `
        FROM submissions WHERE assignment_name = $1 AND netid = $2
        ORDER BY submitted_at`

	return r.list(ctx, query, assignment, netid)
}

func (r *SubmissionRepository) list(ctx context.Context, query string, args ...any) ([]entity.Submission, error) {
	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to list submissions")
	}

	submissions := make([]entity.Submission, len(rows))
	for i, row := range rows {
		submissions[i] = row.toEntity()
	}

	return submissions, nil
}
