package config

import "time"

type Redis struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	StatsTTL time.Duration `env:"REDIS_STATS_TTL" envDefault:"5m"`
}
