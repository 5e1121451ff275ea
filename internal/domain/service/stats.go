package service

import (
	"context"

	"anubis/internal/domain/entity"
)

type StatsCache interface {
	GetAssignment(ctx context.Context, assignment string) (entity.AssignmentStats, bool, error)
	SetAssignment(ctx context.Context, stats entity.AssignmentStats) error
	GetStudent(ctx context.Context, assignment, netid string) (entity.StudentAssignmentStat, bool, error)
	SetStudent(ctx context.Context, stat entity.StudentAssignmentStat) error
}

type StatsService struct {
	assignmentRepo AssignmentRepository
	studentRepo    StudentRepository
	submissionRepo SubmissionRepository
	cache          StatsCache
}

func NewStatsService(
	assignmentRepo AssignmentRepository,
	studentRepo StudentRepository,
	submissionRepo SubmissionRepository,
	cache StatsCache,
) *StatsService {
	return &StatsService{
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
		submissionRepo: submissionRepo,
		cache:          cache,
	}
}

// ForAssignment returns the aggregate for every student who submitted.
// Reads go through the cache; a cache failure degrades to the database.
func (s *StatsService) ForAssignment(ctx context.Context, assignment string) (entity.AssignmentStats, error) {
	if cached, ok, err := s.cache.GetAssignment(ctx, assignment); err != nil {
		logger(ctx).Warn("stats cache read failed", "assignment", assignment, "error", err)
	} else if ok {
		return cached, nil
	}

	if _, err := s.assignmentRepo.GetByName(ctx, assignment); err != nil {
		return entity.AssignmentStats{}, err
	}

	submissions, err := s.submissionRepo.ListByAssignment(ctx, assignment)
	if err != nil {
		return entity.AssignmentStats{}, err
	}

	stats := BuildAssignmentStats(assignment, submissions)

	if err := s.cache.SetAssignment(ctx, stats); err != nil {
		logger(ctx).Warn("stats cache write failed", "assignment", assignment, "error", err)
	}

	return stats, nil
}

func (s *StatsService) ForStudent(ctx context.Context, assignment, netid string) (entity.StudentAssignmentStat, error) {
	if cached, ok, err := s.cache.GetStudent(ctx, assignment, netid); err != nil {
		logger(ctx).Warn("stats cache read failed", "assignment", assignment, "netid", netid, "error", err)
	} else if ok {
		return cached, nil
	}

	if _, err := s.assignmentRepo.GetByName(ctx, assignment); err != nil {
		return entity.StudentAssignmentStat{}, err
	}
	if _, err := s.studentRepo.GetByNetID(ctx, netid); err != nil {
		return entity.StudentAssignmentStat{}, err
	}

	submissions, err := s.submissionRepo.ListByAssignmentAndStudent(ctx, assignment, netid)
	if err != nil {
		return entity.StudentAssignmentStat{}, err
	}

	stat := buildStudentStat(assignment, netid, submissions)

	if err := s.cache.SetStudent(ctx, stat); err != nil {
		logger(ctx).Warn("stats cache write failed", "assignment", assignment, "netid", netid, "error", err)
	}

	return stat, nil
}

// BuildAssignmentStats folds submissions into per-student rows plus the
// assignment summary. Pending submissions count toward totals but never
// toward the best result.
func BuildAssignmentStats(assignment string, submissions []entity.Submission) entity.AssignmentStats {
	byStudent := make(map[string][]entity.Submission)
	order := make([]string, 0)
	for _, submission := range submissions {
		if _, seen := byStudent[submission.NetID]; !seen {
			order = append(order, submission.NetID)
		}
		byStudent[submission.NetID] = append(byStudent[submission.NetID], submission)
	}

	stats := entity.AssignmentStats{
		AssignmentName: assignment,
		Students:       make([]entity.StudentAssignmentStat, 0, len(order)),
	}

	var passedSum int
	var graded int
	for _, netid := range order {
		stat := buildStudentStat(assignment, netid, byStudent[netid])
		stats.Students = append(stats.Students, stat)
		stats.StudentsSubmitted++
		if stat.Late {
			stats.LateCount++
		}
		if stat.Best != nil {
			passedSum += stat.Best.TestsPassed
			graded++
		}
	}

	if graded > 0 {
		stats.AverageTestsPassed = float64(passedSum) / float64(graded)
	}

	return stats
}

func buildStudentStat(assignment, netid string, submissions []entity.Submission) entity.StudentAssignmentStat {
	stat := entity.StudentAssignmentStat{
		NetID:          netid,
		AssignmentName: assignment,
	}

	for _, submission := range submissions {
		stat.TotalSubmissions++
		if !submission.Late {
			stat.OnTimeSubmissions++
		}
	}

	stat.Best = bestSubmission(submissions)
	stat.Late = stat.Best != nil && stat.Best.Late

	return stat
}

// bestSubmission picks the processed submission with the most passed tests,
// preferring on-time over late, then the most recent.
func bestSubmission(submissions []entity.Submission) *entity.Submission {
	var best *entity.Submission
	for i := range submissions {
		submission := &submissions[i]
		if !submission.Processed() {
			continue
		}
		if best == nil || betterThan(submission, best) {
			best = submission
		}
	}

	if best == nil {
		return nil
	}

	copied := *best
	return &copied
}

func betterThan(a, b *entity.Submission) bool {
	if a.TestsPassed != b.TestsPassed {
		return a.TestsPassed > b.TestsPassed
	}
	if a.Late != b.Late {
		return !a.Late
	}
	return a.SubmittedAt.After(b.SubmittedAt)
}
