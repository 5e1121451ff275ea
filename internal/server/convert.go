package server

import (
	"time"

	"github.com/samber/lo"

	"anubis/internal/domain/entity"
)

func newRESTStudent(student entity.Student) Student {
	return Student{
		NetID:          student.NetID,
		Name:           student.Name,
		GithubUsername: student.GithubUsername,
		CreatedAt:      student.CreatedAt.Format(time.RFC3339),
	}
}

func newDomainStudent(record StudentRecord) entity.Student {
	return entity.Student{
		NetID:          record.NetID,
		Name:           record.Name,
		GithubUsername: record.GithubUsername,
	}
}

func newRESTAssignment(assignment entity.Assignment) Assignment {
	return Assignment{
		Name:    assignment.Name,
		Release: assignment.ReleaseAt.Format(entity.TimeLayout),
		Due:     assignment.DueAt.Format(entity.TimeLayout),
	}
}

func newRESTSubmission(submission entity.Submission) Submission {
	var processedAt *string
	if submission.ProcessedAt != nil {
		formatted := submission.ProcessedAt.Format(time.RFC3339)
		processedAt = &formatted
	}

	return Submission{
		ID:          submission.ID,
		Assignment:  submission.AssignmentName,
		NetID:       submission.NetID,
		CommitHash:  submission.CommitHash,
		State:       submission.State,
		TestsPassed: submission.TestsPassed,
		TestsTotal:  submission.TestsTotal,
		TestNames:   submission.TestNames,
		Late:        submission.Late,
		SubmittedAt: submission.SubmittedAt.Format(time.RFC3339),
		ProcessedAt: processedAt,
	}
}

func newRESTStudentStat(stat entity.StudentAssignmentStat) StudentStat {
	var best *Submission
	if stat.Best != nil {
		converted := newRESTSubmission(*stat.Best)
		best = &converted
	}

	return StudentStat{
		NetID:             stat.NetID,
		Assignment:        stat.AssignmentName,
		TotalSubmissions:  stat.TotalSubmissions,
		OnTimeSubmissions: stat.OnTimeSubmissions,
		Late:              stat.Late,
		Best:              best,
	}
}

func newRESTAssignmentStats(stats entity.AssignmentStats) AssignmentStats {
	return AssignmentStats{
		Assignment:         stats.AssignmentName,
		StudentsSubmitted:  stats.StudentsSubmitted,
		AverageTestsPassed: stats.AverageTestsPassed,
		LateCount:          stats.LateCount,
		Students:           lo.Map(stats.Students, func(stat entity.StudentAssignmentStat, _ int) StudentStat {
			return newRESTStudentStat(stat)
		}),
	}
}
