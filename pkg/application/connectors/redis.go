package connectors

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

type Redis struct {
	Addr     string
	Password string
	DB       int

	once   sync.Once
	client *redis.Client
}

func (r *Redis) Client(ctx context.Context) *redis.Client {
	r.once.Do(func() {
		client := redis.NewClient(&redis.Options{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
		})

		lo.Must(client.Ping(ctx).Result())

		r.client = client
	})

	return r.client
}

func (r *Redis) Close(ctx context.Context) {
	if r.client == nil {
		return
	}

	if err := r.client.Close(); err != nil {
		logger(ctx).Error("redis close", "error", err)
	}
}
