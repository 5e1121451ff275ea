package server

// Wire types for the JSON API. Assignment timestamps travel in the
// "2006-01-02 15:04:05" layout on both directions.

type StudentRecord struct {
	NetID          string `json:"netid" validate:"required"`
	Name           string `json:"name" validate:"required"`
	GithubUsername string `json:"github_username"`
}

type Student struct {
	NetID          string `json:"netid"`
	Name           string `json:"name"`
	GithubUsername string `json:"github_username"`
	CreatedAt      string `json:"created_at"`
}

type AssignmentAddRequest struct {
	Name    string `json:"name" validate:"required"`
	Release string `json:"release" validate:"required"`
	Due     string `json:"due" validate:"required"`
}

type Assignment struct {
	Name    string `json:"name"`
	Release string `json:"release"`
	Due     string `json:"due"`
}

type SubmissionAddRequest struct {
	Assignment string `json:"assignment" validate:"required"`
	NetID      string `json:"netid" validate:"required"`
	CommitHash string `json:"commit" validate:"required"`
}

type Submission struct {
	ID          string   `json:"id"`
	Assignment  string   `json:"assignment"`
	NetID       string   `json:"netid"`
	CommitHash  string   `json:"commit"`
	State       string   `json:"state"`
	TestsPassed int      `json:"tests_passed"`
	TestsTotal  int      `json:"tests_total"`
	TestNames   []string `json:"test_names"`
	Late        bool     `json:"late"`
	SubmittedAt string   `json:"submitted_at"`
	ProcessedAt *string  `json:"processed_at"`
}

type StudentStat struct {
	NetID             string      `json:"netid"`
	Assignment        string      `json:"assignment"`
	TotalSubmissions  int         `json:"total_submissions"`
	OnTimeSubmissions int         `json:"on_time_submissions"`
	Late              bool        `json:"late"`
	Best              *Submission `json:"best"`
}

type AssignmentStats struct {
	Assignment         string        `json:"assignment"`
	StudentsSubmitted  int           `json:"students_submitted"`
	AverageTestsPassed float64       `json:"average_tests_passed"`
	LateCount          int           `json:"late_count"`
	Students           []StudentStat `json:"students"`
}
