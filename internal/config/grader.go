package config

type Grader struct {
	Queue            string `env:"GRADER_QUEUE" envDefault:"autograde"`
	Concurrency      int    `env:"GRADER_CONCURRENCY" envDefault:"4"`
	MaxRetry         int    `env:"GRADER_MAX_RETRY" envDefault:"3"`
	StatsRefreshSpec string `env:"GRADER_STATS_REFRESH_SPEC" envDefault:"@every 10m"`
}
