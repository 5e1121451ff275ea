package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// BulkUpsert loads a roster inside one transaction. Existing netids are
// updated in place so re-loading the same roster file is idempotent.
func (r *StudentRepository) BulkUpsert(ctx context.Context, students []entity.Student) ([]entity.Student, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
        INSERT INTO students (netid, name, github_username)
        VALUES (:netid, :name, :github_username)
        ON CONFLICT (netid) DO UPDATE SET
            name = EXCLUDED.name,
            github_username = EXCLUDED.github_username
        RETURNING netid, name, github_username, created_at;
    `

	loaded := make([]entity.Student, 0, len(students))
	for _, student := range students {
		rows, err := tx.NamedQuery(query, student)
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError,
				fmt.Sprintf("failed to upsert student '%s'", student.NetID))
		}

		if rows.Next() {
			var created entity.Student
			if err := rows.StructScan(&created); err != nil {
				rows.Close()
				return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to scan upserted student")
			}
			loaded = append(loaded, created)
		}
		rows.Close()
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to commit transaction")
	}

	return loaded, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]entity.Student, error) {
	query := `SELECT netid, name, github_username, created_at FROM students ORDER BY netid`

	var students []entity.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to list students")
	}

	return students, nil
}

func (r *StudentRepository) GetByNetID(ctx context.Context, netid string) (entity.Student, error) {
	query := `SELECT netid, name, github_username, created_at FROM students WHERE netid = $1`

	var student entity.Student
	err := r.db.GetContext(ctx, &student, query, netid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Student{}, domain.NewError(errcodes.NotFound,
				fmt.Sprintf("student with netid '%s' not found", netid))
		}
		return entity.Student{}, domain.WrapError(err, errcodes.InternalServerError, "repository: failed to get student")
	}

	return student, nil
}
