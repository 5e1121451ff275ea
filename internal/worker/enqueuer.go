package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Enqueuer is the producer side of the autograde queue.
type Enqueuer struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

func NewEnqueuer(client *asynq.Client, queue string, maxRetry int) *Enqueuer {
	return &Enqueuer{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
	}
}

func (e *Enqueuer) EnqueueProcess(ctx context.Context, submissionID string) error {
	task, err := NewSubmissionProcessTask(submissionID)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue(e.queue), asynq.MaxRetry(e.maxRetry)); err != nil {
		return fmt.Errorf("asynq enqueue: %w", err)
	}

	return nil
}
