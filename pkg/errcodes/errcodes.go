package errcodes

type ErrorCode string

const (
	AssignmentExists    ErrorCode = "AssignmentExists"
	SubmissionExists    ErrorCode = "SubmissionExists"
	NotFound            ErrorCode = "NotFound"
	InvalidArgument     ErrorCode = "InvalidArgument"
	InvalidTimeRange    ErrorCode = "InvalidTimeRange"
	InternalServerError ErrorCode = "InternalError"
)
