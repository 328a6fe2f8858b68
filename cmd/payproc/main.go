package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/payproc/internal/adapter/csv"
	httpAdapter "github.com/iho/payproc/internal/adapter/http"
	"github.com/iho/payproc/internal/adapter/http/handler"
	"github.com/iho/payproc/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/payproc/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/payproc/internal/adapter/repository/redis"
	"github.com/iho/payproc/internal/infrastructure/config"
	"github.com/iho/payproc/internal/infrastructure/logger"
	"github.com/iho/payproc/internal/infrastructure/metrics"
	"github.com/iho/payproc/internal/infrastructure/postgres"
	"github.com/iho/payproc/internal/infrastructure/redis"
	"github.com/iho/payproc/internal/ledger"
	"github.com/iho/payproc/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "payproc",
		Short:         "Payment activity processor",
		Long:          "payproc folds payment activity records into per-client account snapshots.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

func newProcessCmd() *cobra.Command {
	var silent bool

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process a CSV activity file and print account snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args[0], silent)
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "suppress per-record rejection logging")

	return cmd
}

func runProcess(path string, silent bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := cfg.LogLevel
	if silent {
		level = "error"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.LogFormat})

	var input *os.File
	if path == "-" {
		input = os.Stdin
	} else {
		input, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("opening activity file: %w", err)
		}
		defer input.Close()
	}

	reader, err := csv.NewReader(input)
	if err != nil {
		return fmt.Errorf("reading activity file: %w", err)
	}

	processor := ledger.NewProcessor(log, nil)
	if err := processor.Run(reader); err != nil {
		return fmt.Errorf("processing activities: %w", err)
	}

	writer := csv.NewWriter(os.Stdout)
	if err := writer.WriteSnapshots(processor.Accounts().Snapshots()); err != nil {
		return fmt.Errorf("writing snapshots: %w", err)
	}

	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the activity processing HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	m := metrics.New()
	idGen := postgresRepo.NewULIDGenerator()
	journal := usecase.NewRejectionJournal(cfg.JournalSize, idGen)
	observer := ledger.MultiObserver{journal, m}
	processor := ledger.NewProcessor(log, observer)
	activityUC := usecase.NewActivityUseCase(processor, journal, m)

	// Optional collaborators: the processor runs fully in memory when
	// no database or redis URL is configured.
	var archiveUC *usecase.ArchiveUseCase
	healthPool, err := setupPostgres(ctx, cfg, log)
	if err != nil {
		return err
	}
	if healthPool != nil {
		defer healthPool.Close()
		archiveUC = usecase.NewArchiveUseCase(
			postgresRepo.NewTxManager(healthPool),
			postgresRepo.NewArchiveRepository(),
			postgresRepo.NewRetrier(log),
			activityUC,
			journal,
			m,
		)
	}

	redisClient, err := setupRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		defer redisClient.Close()
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ActivityHandler:  handler.NewActivityHandler(activityUC),
		AccountHandler:   handler.NewAccountHandler(activityUC),
		LedgerHandler:    handler.NewLedgerHandler(activityUC),
		HealthHandler:    handler.NewHealthHandler(healthPool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	serveCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if archiveUC != nil {
		go archiveUC.Run(serveCtx, cfg.ArchiveInterval, func(err error) {
			log.Error().Err(err).Msg("archive run failed")
		})
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-serveCtx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	log.Info().Msg("server stopped")

	return nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("no database configured, archival disabled")
		return nil, nil
	}

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")

	return pool, nil
}

func setupRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	if cfg.RedisURL == "" {
		log.Info().Msg("no redis configured, idempotency disabled")
		return nil, nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	log.Info().Msg("connected to redis")

	return client, nil
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})

	return migrateCmd
}
