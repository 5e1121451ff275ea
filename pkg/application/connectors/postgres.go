package connectors

import (
	"context"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"anubis/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Postgres struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	once sync.Once
	db   *sqlx.DB
}

func (p *Postgres) Client(ctx context.Context) *sqlx.DB {
	p.once.Do(func() {
		db := lo.Must(sqlx.Open("pgx", p.DSN))

		db.SetMaxIdleConns(p.MaxIdleConns)
		db.SetMaxOpenConns(p.MaxOpenConns)
		db.SetConnMaxLifetime(p.ConnMaxLifetime)

		lo.Must0(db.PingContext(ctx))

		p.db = db
	})

	return p.db
}

func (p *Postgres) Close(ctx context.Context) {
	if p.db == nil {
		return
	}

	if err := p.db.Close(); err != nil {
		logger(ctx).Error("postgres close", "error", err)
	}
}
