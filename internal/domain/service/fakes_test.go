package service

import (
	"context"
	"fmt"
	"time"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

type fakeStudentRepo struct {
	students map[string]entity.Student
	upserted [][]entity.Student
}

func newFakeStudentRepo(students ...entity.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: make(map[string]entity.Student)}
	for _, student := range students {
		repo.students[student.NetID] = student
	}
	return repo
}

func (r *fakeStudentRepo) BulkUpsert(_ context.Context, students []entity.Student) ([]entity.Student, error) {
	r.upserted = append(r.upserted, students)
	for _, student := range students {
		r.students[student.NetID] = student
	}
	return students, nil
}

func (r *fakeStudentRepo) List(_ context.Context) ([]entity.Student, error) {
	students := make([]entity.Student, 0, len(r.students))
	for _, student := range r.students {
		students = append(students, student)
	}
	return students, nil
}

func (r *fakeStudentRepo) GetByNetID(_ context.Context, netid string) (entity.Student, error) {
	student, ok := r.students[netid]
	if !ok {
		return entity.Student{}, domain.NewError(errcodes.NotFound,
			fmt.Sprintf("student with netid '%s' not found", netid))
	}
	return student, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]entity.Assignment
	createErr   error
}

func newFakeAssignmentRepo(assignments ...entity.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: make(map[string]entity.Assignment)}
	for _, assignment := range assignments {
		repo.assignments[assignment.Name] = assignment
	}
	return repo
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment entity.Assignment) (entity.Assignment, error) {
	if r.createErr != nil {
		return entity.Assignment{}, r.createErr
	}
	if _, ok := r.assignments[assignment.Name]; ok {
		return entity.Assignment{}, domain.NewError(errcodes.AssignmentExists,
			fmt.Sprintf("assignment '%s' already exists", assignment.Name))
	}
	assignment.CreatedAt = time.Now()
	r.assignments[assignment.Name] = assignment
	return assignment, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context) ([]entity.Assignment, error) {
	assignments := make([]entity.Assignment, 0, len(r.assignments))
	for _, assignment := range r.assignments {
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

func (r *fakeAssignmentRepo) GetByName(_ context.Context, name string) (entity.Assignment, error) {
	assignment, ok := r.assignments[name]
	if !ok {
		return entity.Assignment{}, domain.NewError(errcodes.NotFound,
			fmt.Sprintf("assignment '%s' not found", name))
	}
	return assignment, nil
}

type fakeSubmissionRepo struct {
	submissions []entity.Submission
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission entity.Submission) (entity.Submission, error) {
	r.submissions = append(r.submissions, submission)
	return submission, nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id string) (entity.Submission, error) {
	for _, submission := range r.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return entity.Submission{}, domain.NewError(errcodes.NotFound,
		fmt.Sprintf("submission with id '%s' not found", id))
}

func (r *fakeSubmissionRepo) SetResult(_ context.Context, id string, passed, total int, testNames []string, processedAt time.Time) (entity.Submission, error) {
	for i := range r.submissions {
		if r.submissions[i].ID == id {
			r.submissions[i].State = entity.SubmissionProcessed
			r.submissions[i].TestsPassed = passed
			r.submissions[i].TestsTotal = total
			r.submissions[i].TestNames = testNames
			r.submissions[i].ProcessedAt = &processedAt
			return r.submissions[i], nil
		}
	}
	return entity.Submission{}, domain.NewError(errcodes.NotFound,
		fmt.Sprintf("submission with id '%s' not found", id))
}

func (r *fakeSubmissionRepo) ListByAssignment(_ context.Context, assignment string) ([]entity.Submission, error) {
	var matched []entity.Submission
	for _, submission := range r.submissions {
		if submission.AssignmentName == assignment {
			matched = append(matched, submission)
		}
	}
	return matched, nil
}

func (r *fakeSubmissionRepo) ListByAssignmentAndStudent(_ context.Context, assignment, netid string) ([]entity.Submission, error) {
	var matched []entity.Submission
	for _, submission := range r.submissions {
		if submission.AssignmentName == assignment && submission.NetID == netid {
			matched = append(matched, submission)
		}
	}
	return matched, nil
}

type fakeEnqueuer struct {
	enqueued []string
	err      error
}

func (e *fakeEnqueuer) EnqueueProcess(_ context.Context, submissionID string) error {
	if e.err != nil {
		return e.err
	}
	e.enqueued = append(e.enqueued, submissionID)
	return nil
}

type fakeStatsCache struct {
	assignmentStats map[string]entity.AssignmentStats
	studentStats    map[string]entity.StudentAssignmentStat
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{
		assignmentStats: make(map[string]entity.AssignmentStats),
		studentStats:    make(map[string]entity.StudentAssignmentStat),
	}
}

func (c *fakeStatsCache) GetAssignment(_ context.Context, assignment string) (entity.AssignmentStats, bool, error) {
	stats, ok := c.assignmentStats[assignment]
	return stats, ok, nil
}

func (c *fakeStatsCache) SetAssignment(_ context.Context, stats entity.AssignmentStats) error {
	c.assignmentStats[stats.AssignmentName] = stats
	return nil
}

func (c *fakeStatsCache) GetStudent(_ context.Context, assignment, netid string) (entity.StudentAssignmentStat, bool, error) {
	stat, ok := c.studentStats[assignment+"/"+netid]
	return stat, ok, nil
}

func (c *fakeStatsCache) SetStudent(_ context.Context, stat entity.StudentAssignmentStat) error {
	c.studentStats[stat.AssignmentName+"/"+stat.NetID] = stat
	return nil
}
