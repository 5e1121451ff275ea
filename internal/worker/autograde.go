package worker

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/hibiken/asynq"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/contextx"
	"anubis/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SubmissionStore interface {
	GetByID(ctx context.Context, id string) (entity.Submission, error)
	SetResult(ctx context.Context, id string, passed, total int, testNames []string, processedAt time.Time) (entity.Submission, error)
}

type AssignmentStore interface {
	GetByName(ctx context.Context, name string) (entity.Assignment, error)
	List(ctx context.Context) ([]entity.Assignment, error)
}

type StatsInvalidator interface {
	Invalidate(ctx context.Context, assignment string) error
}

// Autograder consumes the submission queue. The actual test execution
// happens on the course cluster; this handler scores the reported commit
// and settles the submission record.
type Autograder struct {
	submissions SubmissionStore
	assignments AssignmentStore
	cache       StatsInvalidator

	now func() time.Time
}

func NewAutograder(submissions SubmissionStore, assignments AssignmentStore, cache StatsInvalidator) *Autograder {
	return &Autograder{
		submissions: submissions,
		assignments: assignments,
		cache:       cache,
		now:         time.Now,
	}
}

func (g *Autograder) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSubmissionProcess, g.HandleSubmissionProcess)
	mux.HandleFunc(TypeStatsRefresh, g.HandleStatsRefresh)
}

func (g *Autograder) HandleSubmissionProcess(ctx context.Context, task *asynq.Task) error {
	var payload SubmissionProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	submission, err := g.submissions.GetByID(ctx, payload.SubmissionID)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.NotFound {
			logger(ctx).Warn("dropping autograde task for missing submission", "submission_id", payload.SubmissionID)
			return nil
		}
		return fmt.Errorf("get submission %s: %w", payload.SubmissionID, err)
	}

	// Retries and duplicate deliveries land here.
	if submission.Processed() {
		return nil
	}

	assignment, err := g.assignments.GetByName(ctx, submission.AssignmentName)
	if err != nil {
		return fmt.Errorf("get assignment %s: %w", submission.AssignmentName, err)
	}

	testNames, passed := Score(assignment.Name, submission.CommitHash)

	processed, err := g.submissions.SetResult(ctx, submission.ID, passed, len(testNames), testNames, g.now())
	if err != nil {
		return fmt.Errorf("set result %s: %w", submission.ID, err)
	}

	logger(ctx).Info("submission processed",
		"submission_id", processed.ID,
		"assignment", processed.AssignmentName,
		"netid", processed.NetID,
		"tests_passed", processed.TestsPassed,
		"tests_total", processed.TestsTotal,
	)

	if err := g.cache.Invalidate(ctx, processed.AssignmentName); err != nil {
		// The cached aggregate will still expire on its TTL.
		logger(ctx).Warn("stats cache invalidation failed", "assignment", processed.AssignmentName, "error", err)
	}

	return nil
}

// HandleStatsRefresh drops cached aggregates for released assignments so
// the next read recomputes them from the database.
func (g *Autograder) HandleStatsRefresh(ctx context.Context, _ *asynq.Task) error {
	assignments, err := g.assignments.List(ctx)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}

	now := g.now()
	for _, assignment := range assignments {
		if !assignment.Released(now) {
			continue
		}
		if err := g.cache.Invalidate(ctx, assignment.Name); err != nil {
			return fmt.Errorf("invalidate %s: %w", assignment.Name, err)
		}
	}

	return nil
}

var graderTests = []string{"build", "test 1", "test 2", "test 3", "test 4", "test 5"}

// Score is deterministic in (assignment, commit) so task retries converge
// on the same result.
func Score(assignment, commitHash string) (testNames []string, passed int) {
	for _, name := range graderTests {
		if testPasses(assignment, commitHash, name) {
			passed++
		}
	}

	return graderTests, passed
}

func testPasses(assignment, commitHash, testName string) bool {
	h := fnv.New32a()
	h.Write([]byte(assignment))
	h.Write([]byte(":"))
	h.Write([]byte(commitHash))
	h.Write([]byte(":"))
	h.Write([]byte(testName))

	return h.Sum32()%4 != 0
}
