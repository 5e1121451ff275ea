package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"anubis/internal/config"
	"anubis/internal/domain/service"
	"anubis/internal/infrastructure/cache"
	"anubis/internal/infrastructure/persistence"
	"anubis/internal/server"
	"anubis/internal/worker"
	"anubis/pkg/application/connectors"
	"anubis/pkg/application/modules"
	"anubis/pkg/contextx"
	"anubis/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type App struct {
	cfg      config.Config
	slog     *connectors.Slog
	postgres *connectors.Postgres
	redis    *connectors.Redis
	asynq    *connectors.Asynq

	httpServer     modules.HTTPServer
	asynqServer    modules.AsynqServer
	asynqScheduler modules.AsynqScheduler

	studentRepo    *persistence.StudentRepository
	assignmentRepo *persistence.AssignmentRepository
	submissionRepo *persistence.SubmissionRepository
	statsCache     *cache.StatsCache

	studentService    *service.StudentService
	assignmentService *service.AssignmentService
	submissionService *service.SubmissionService
	statsService      *service.StatsService
}

func New(appVersion string) App {
	const appName = "anubis_api"

	cfg := lo.Must(config.Load())

	return App{
		cfg: cfg,
		slog: &connectors.Slog{
			Name:    appName,
			Version: appVersion,
			Debug:   cfg.Debug,
		},
		postgres: &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		},
		redis: &connectors.Redis{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq: &connectors.Asynq{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		httpServer: modules.HTTPServer{
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		},
	}
}

func (app App) shutdown(ctx context.Context) {
	app.asynq.Close(ctx)
	app.redis.Close(ctx)
	app.postgres.Close(ctx)
}

func (app App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	defer stop()

	ctx = contextx.WithLogger(ctx, app.slog.Logger(ctx))

	defer app.shutdown(ctx)

	logger(ctx).Info("config", slog.Any("config", app.cfg))

	client := app.postgres.Client(ctx)
	if err := persistence.Migrate(ctx, client); err != nil {
		return fmt.Errorf("persistence.Migrate: %w", err)
	}

	app.studentRepo = persistence.NewStudentRepository(client)
	app.assignmentRepo = persistence.NewAssignmentRepository(client)
	app.submissionRepo = persistence.NewSubmissionRepository(client)
	app.statsCache = cache.NewStatsCache(app.redis.Client(ctx), app.cfg.Redis.StatsTTL)

	enqueuer := worker.NewEnqueuer(app.asynq.Client(ctx), app.cfg.Grader.Queue, app.cfg.Grader.MaxRetry)

	app.studentService = service.NewStudentService(app.studentRepo)
	app.assignmentService = service.NewAssignmentService(app.assignmentRepo)
	app.submissionService = service.NewSubmissionService(app.assignmentRepo, app.studentRepo, app.submissionRepo, enqueuer)
	app.statsService = service.NewStatsService(app.assignmentRepo, app.studentRepo, app.submissionRepo, app.statsCache)

	grader := worker.NewAutograder(app.submissionRepo, app.assignmentRepo, app.statsCache)
	graderMux := asynq.NewServeMux()
	grader.Register(graderMux)

	graderSrv := asynq.NewServer(app.asynq.RedisOpt(), asynq.Config{
		Concurrency: app.cfg.Grader.Concurrency,
		Queues:      map[string]int{app.cfg.Grader.Queue: 1},
		BaseContext: func() context.Context { return ctx },
	})

	scheduler := asynq.NewScheduler(app.asynq.RedisOpt(), nil)
	if _, err := scheduler.Register(
		app.cfg.Grader.StatsRefreshSpec,
		worker.NewStatsRefreshTask(),
		asynq.Queue(app.cfg.Grader.Queue),
	); err != nil {
		return fmt.Errorf("scheduler.Register: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	app.httpServer.Run(gCtx, g, app.newHTTPServer(gCtx))
	app.asynqServer.Run(gCtx, g, graderSrv, graderMux)
	app.asynqScheduler.Run(gCtx, g, scheduler)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func (app App) newHTTPServer(ctx context.Context) *http.Server {
	metrics := middlewarex.NewMetrics("anubis")

	router := chi.NewRouter()

	router.Use(
		middleware.RealIP,
		middlewarex.Logger,
		metrics.Middleware,
	)

	server.NewServer(
		app.studentService,
		app.assignmentService,
		app.submissionService,
		app.statsService,
	).RegisterRoutes(router)

	router.Handle("/metrics", metrics.Handler())

	return &http.Server{
		//nolint:exhaustruct
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		Addr:              app.cfg.HTTP.ListenAddress,
		WriteTimeout:      app.cfg.HTTP.WriteTimeout,
		ReadTimeout:       app.cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: app.cfg.HTTP.ReadTimeout,
		IdleTimeout:       app.cfg.HTTP.IdleTimeout,
		Handler:           router,
	}
}
