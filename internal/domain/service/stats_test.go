package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anubis/internal/domain"
	"anubis/internal/domain/entity"
	"anubis/pkg/errcodes"
)

func processed(netid string, passed int, late bool, submittedAt time.Time) entity.Submission {
	processedAt := submittedAt.Add(time.Minute)
	return entity.Submission{
		ID:             netid + submittedAt.Format("150405"),
		AssignmentName: "os3224-assignment-2",
		NetID:          netid,
		State:          entity.SubmissionProcessed,
		TestsPassed:    passed,
		TestsTotal:     6,
		Late:           late,
		SubmittedAt:    submittedAt,
		ProcessedAt:    &processedAt,
	}
}

func TestBuildAssignmentStats(t *testing.T) {
	base := time.Date(2021, 2, 10, 12, 0, 0, 0, time.UTC)

	submissions := []entity.Submission{
		processed("jmc1283", 4, false, base),
		processed("jmc1283", 6, false, base.Add(time.Hour)),
		processed("abc123", 3, true, base.Add(2*time.Hour)),
		{
			// Pending submissions count toward totals only.
			ID: "pending1", AssignmentName: "os3224-assignment-2", NetID: "abc123",
			State: entity.SubmissionPending, SubmittedAt: base.Add(3 * time.Hour),
		},
	}

	stats := BuildAssignmentStats("os3224-assignment-2", submissions)

	assert.Equal(t, "os3224-assignment-2", stats.AssignmentName)
	assert.Equal(t, 2, stats.StudentsSubmitted)
	assert.Equal(t, 1, stats.LateCount)
	assert.InDelta(t, 4.5, stats.AverageTestsPassed, 1e-9)

	require.Len(t, stats.Students, 2)

	jmc := stats.Students[0]
	assert.Equal(t, "jmc1283", jmc.NetID)
	assert.Equal(t, 2, jmc.TotalSubmissions)
	assert.Equal(t, 2, jmc.OnTimeSubmissions)
	assert.False(t, jmc.Late)
	require.NotNil(t, jmc.Best)
	assert.Equal(t, 6, jmc.Best.TestsPassed)

	abc := stats.Students[1]
	assert.Equal(t, 2, abc.TotalSubmissions)
	assert.Equal(t, 1, abc.OnTimeSubmissions)
	assert.True(t, abc.Late)
	require.NotNil(t, abc.Best)
	assert.Equal(t, 3, abc.Best.TestsPassed)
}

func TestBuildAssignmentStatsEmpty(t *testing.T) {
	stats := BuildAssignmentStats("os3224-assignment-3", nil)

	assert.Equal(t, 0, stats.StudentsSubmitted)
	assert.Equal(t, 0.0, stats.AverageTestsPassed)
	assert.Empty(t, stats.Students)
}

func TestBestSubmissionTieBreaks(t *testing.T) {
	base := time.Date(2021, 2, 10, 12, 0, 0, 0, time.UTC)

	t.Run("on time beats late on equal score", func(t *testing.T) {
		late := processed("x", 5, true, base.Add(time.Hour))
		onTime := processed("x", 5, false, base)

		best := bestSubmission([]entity.Submission{late, onTime})
		require.NotNil(t, best)
		assert.False(t, best.Late)
	})

	t.Run("latest wins on full tie", func(t *testing.T) {
		earlier := processed("x", 5, false, base)
		later := processed("x", 5, false, base.Add(time.Hour))

		best := bestSubmission([]entity.Submission{earlier, later})
		require.NotNil(t, best)
		assert.Equal(t, later.SubmittedAt, best.SubmittedAt)
	})

	t.Run("only pending yields nil", func(t *testing.T) {
		pending := entity.Submission{State: entity.SubmissionPending, SubmittedAt: base}
		assert.Nil(t, bestSubmission([]entity.Submission{pending}))
	})
}

func TestStatsServiceForAssignment(t *testing.T) {
	assignment := entity.Assignment{
		Name:      "os3224-assignment-2",
		ReleaseAt: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		DueAt:     time.Date(2021, 2, 14, 23, 59, 59, 0, time.UTC),
	}

	t.Run("computes and caches on miss", func(t *testing.T) {
		submissions := &fakeSubmissionRepo{submissions: []entity.Submission{
			processed("jmc1283", 6, false, assignment.ReleaseAt.Add(24*time.Hour)),
		}}
		statsCache := newFakeStatsCache()
		svc := NewStatsService(newFakeAssignmentRepo(assignment), newFakeStudentRepo(), submissions, statsCache)

		stats, err := svc.ForAssignment(context.Background(), "os3224-assignment-2")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.StudentsSubmitted)

		_, ok, _ := statsCache.GetAssignment(context.Background(), "os3224-assignment-2")
		assert.True(t, ok)
	})

	t.Run("serves cached aggregate", func(t *testing.T) {
		statsCache := newFakeStatsCache()
		require.NoError(t, statsCache.SetAssignment(context.Background(), entity.AssignmentStats{
			AssignmentName:    "os3224-assignment-2",
			StudentsSubmitted: 42,
		}))

		// Repos are empty: a hit must not touch them.
		svc := NewStatsService(newFakeAssignmentRepo(), newFakeStudentRepo(), &fakeSubmissionRepo{}, statsCache)

		stats, err := svc.ForAssignment(context.Background(), "os3224-assignment-2")
		require.NoError(t, err)
		assert.Equal(t, 42, stats.StudentsSubmitted)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		svc := NewStatsService(newFakeAssignmentRepo(), newFakeStudentRepo(), &fakeSubmissionRepo{}, newFakeStatsCache())

		_, err := svc.ForAssignment(context.Background(), "os3224-assignment-9")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errcodes.NotFound, appErr.Code)
	})
}

func TestStatsServiceForStudent(t *testing.T) {
	assignment := entity.Assignment{
		Name:      "os3224-assignment-2",
		ReleaseAt: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
		DueAt:     time.Date(2021, 2, 14, 23, 59, 59, 0, time.UTC),
	}
	student := entity.Student{NetID: "jmc1283", Name: "John"}

	t.Run("no submissions yields zeroed stat", func(t *testing.T) {
		svc := NewStatsService(
			newFakeAssignmentRepo(assignment),
			newFakeStudentRepo(student),
			&fakeSubmissionRepo{},
			newFakeStatsCache(),
		)

		stat, err := svc.ForStudent(context.Background(), "os3224-assignment-2", "jmc1283")
		require.NoError(t, err)
		assert.Equal(t, 0, stat.TotalSubmissions)
		assert.Nil(t, stat.Best)
		assert.False(t, stat.Late)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc := NewStatsService(
			newFakeAssignmentRepo(assignment),
			newFakeStudentRepo(),
			&fakeSubmissionRepo{},
			newFakeStatsCache(),
		)

		_, err := svc.ForStudent(context.Background(), "os3224-assignment-2", "ghost")

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errcodes.NotFound, appErr.Code)
	})
}
