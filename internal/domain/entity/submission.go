package entity

import "time"

const SubmissionPending = "PENDING"
const SubmissionProcessed = "PROCESSED"

type Submission struct {
	ID             string     `db:"id"`
	AssignmentName string     `db:"assignment_name"`
	NetID          string     `db:"netid"`
	CommitHash     string     `db:"commit_hash"`
	State          string     `db:"state"`
	TestsPassed    int        `db:"tests_passed"`
	TestsTotal     int        `db:"tests_total"`
	TestNames      []string   `db:"-"`
	Late           bool       `db:"late"`
	SubmittedAt    time.Time  `db:"submitted_at"`
	ProcessedAt    *time.Time `db:"processed_at"`
}

func (s Submission) Processed() bool {
	return s.State == SubmissionProcessed
}
