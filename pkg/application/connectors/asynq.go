package connectors

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

type Asynq struct {
	Addr     string
	Password string
	DB       int

	once   sync.Once
	client *asynq.Client
}

func (a *Asynq) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Addr,
		Password: a.Password,
		DB:       a.DB,
	}
}

// Client returns the task-producer side. The consumer (asynq.Server) is
// built by the application from RedisOpt because its lifecycle differs.
func (a *Asynq) Client(_ context.Context) *asynq.Client {
	a.once.Do(func() {
		a.client = asynq.NewClient(a.RedisOpt())
	})

	return a.client
}

func (a *Asynq) Close(ctx context.Context) {
	if a.client == nil {
		return
	}

	if err := a.client.Close(); err != nil {
		logger(ctx).Error("asynq client close", "error", err)
	}
}
