package connectors

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type Slog struct {
	Name    string
	Version string
	Debug   bool
}

func (s *Slog) Logger(_ context.Context) *slog.Logger {
	level := slog.LevelInfo
	if s.Debug {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})

	return slog.New(handler).With(
		slog.String("app", s.Name),
		slog.String("version", s.Version),
	)
}
