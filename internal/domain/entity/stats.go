package entity

// StudentAssignmentStat is the per-student view of one assignment: the best
// processed submission plus submission counts. Best means the most tests
// passed; ties prefer on-time submissions, then the most recent one.
type StudentAssignmentStat struct {
	NetID             string      `db:"netid"`
	AssignmentName    string      `db:"assignment_name"`
	TotalSubmissions  int         `db:"total_submissions"`
	OnTimeSubmissions int         `db:"on_time_submissions"`
	Late              bool        `db:"late"`
	Best              *Submission `db:"-"`
}

type AssignmentStats struct {
	AssignmentName     string
	StudentsSubmitted  int
	AverageTestsPassed float64
	LateCount          int
	Students           []StudentAssignmentStat
}
