package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

const pgUniqueViolation = "23505"
const pgForeignKeyViolation = "23503"
const pgCheckViolation = "23514"

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment entity.Assignment) (entity.Assignment, error) {
	query := `
        INSERT INTO assignments (name, release_at, due_at)
        VALUES ($1, $2, $3)
        RETURNING name, release_at, due_at, created_at;
    `

	var created entity.Assignment
	err := r.db.GetContext(ctx, &created, query, assignment.Name, assignment.ReleaseAt, assignment.DueAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entity.Assignment{}, domain.NewError(errcodes.AssignmentExists,
				fmt.Sprintf("assignment '%s' already exists", assignment.Name))
		}
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
			return entity.Assignment{}, domain.NewError(errcodes.InvalidTimeRange,
				"assignment release must precede due date")
		}
		return entity.Assignment{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to create assignment")
	}

	return created, nil
}

func (r *AssignmentRepository) List(ctx context.Context) ([]entity.Assignment, error) {
	query := `SELECT name, release_at, due_at, created_at FROM assignments ORDER BY release_at, name`

	var assignments []entity.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to list assignments")
	}

	return assignments, nil
}

func (r *AssignmentRepository) GetByName(ctx context.Context, name string) (entity.Assignment, error) {
	query := `SELECT name, release_at, due_at, created_at FROM assignments WHERE name = $1`

	var assignment entity.Assignment
	err := r.db.GetContext(ctx, &assignment, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Assignment{}, domain.NewError(errcodes.NotFound,
				fmt.Sprintf("assignment '%s' not found", name))
		}
		return entity.Assignment{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to get assignment")
	}

	return assignment, nil
}
