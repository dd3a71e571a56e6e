package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/crosswatch-systems/crosswatch/internal/config"
	"github.com/crosswatch-systems/crosswatch/internal/correlation"
	"github.com/crosswatch-systems/crosswatch/internal/handlers"
	"github.com/crosswatch-systems/crosswatch/internal/nats"
	"github.com/crosswatch-systems/crosswatch/internal/ratelimit"
	"github.com/crosswatch-systems/crosswatch/internal/repository"
	"github.com/crosswatch-systems/crosswatch/internal/scheduler"
	"github.com/crosswatch-systems/crosswatch/internal/server"
	"github.com/crosswatch-systems/crosswatch/internal/service"
	"github.com/crosswatch-systems/crosswatch/internal/webhook"
	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

var migrationsPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the crosswatch HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&migrationsPath, "migrations", "migrations", "path to database migrations")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	logging.SetDefault(logger)
	ctx := context.Background()

	repo, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	limiter, err := buildLimiter(cfg, logger)
	if err != nil {
		return err
	}
	defer limiter.Close()

	var dispatcher *webhook.Dispatcher
	if cfg.Webhooks.RegistryPath != "" {
		registry, err := webhook.LoadRegistry(cfg.Webhooks.RegistryPath)
		if err != nil {
			return fmt.Errorf("load webhook registry: %w", err)
		}
		dispatcher = webhook.NewDispatcher(registry, cfg.Webhooks.Timeout, logger)
		logger.InfoContext(ctx, "webhook dispatch enabled", "subscribers", registry.Len())
	}

	var publisher nats.Publisher = nats.NoOpPublisher{}
	if cfg.NATS.Enabled {
		natsCfg := nats.DefaultConfig()
		natsCfg.URL = cfg.NATS.URL
		publisher, err = nats.NewPublisher(natsCfg)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		logger.InfoContext(ctx, "NATS publishing enabled", "url", cfg.NATS.URL)
	}
	defer publisher.Close()

	engine := correlation.New(cfg.Engine)
	svc := service.New(engine, repo, dispatcher, publisher, logger)
	handler := handlers.New(svc, logger)

	router := server.NewRouter(handler, server.Options{
		APIKey:         cfg.Server.APIKey,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(scheduler.RunnerFunc(func(ctx context.Context) error {
			_, _, err := svc.RunAnalysis(ctx)
			return err
		}), cfg.Scheduler.Interval, logger)
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "crosswatch listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.InfoContext(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.InfoContext(ctx, "shutdown complete")
	return nil
}

func buildRepository(ctx context.Context, cfg *config.Config, logger *logging.Logger) (repository.Repository, error) {
	if !cfg.Database.Enabled {
		logger.InfoContext(ctx, "using in-memory repository")
		return repository.NewMemoryRepository(), nil
	}

	connString := cfg.Database.Postgres.ConnString()

	logger.InfoContext(ctx, "running database migrations")
	m, err := migrate.New("file://"+migrationsPath, connString)
	if err != nil {
		return nil, fmt.Errorf("initialize migrations: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo, err := repository.NewPostgresRepository(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.InfoContext(ctx, "using postgres repository",
		"host", cfg.Database.Postgres.Host, "database", cfg.Database.Postgres.Database)
	return repo, nil
}

func buildLimiter(cfg *config.Config, logger *logging.Logger) (ratelimit.Limiter, error) {
	window := 60 * time.Second
	if cfg.Redis.Enabled {
		limiter, err := ratelimit.NewRedisLimiter(cfg.Redis.URL, cfg.Server.RateLimit, window)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("using redis rate limiter", "url", cfg.Redis.URL)
		return limiter, nil
	}
	logger.Info("using in-process rate limiter")
	return ratelimit.NewMemoryLimiter(cfg.Server.RateLimit, window), nil
}
