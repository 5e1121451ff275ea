package worker

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

const TypeSubmissionProcess = "submission:process"
const TypeStatsRefresh = "stats:refresh"

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type SubmissionProcessPayload struct {
	SubmissionID string `json:"submission_id"`
}

func NewSubmissionProcessTask(submissionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SubmissionProcessPayload{SubmissionID: submissionID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return asynq.NewTask(TypeSubmissionProcess, payload), nil
}

func NewStatsRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeStatsRefresh, nil)
}
