package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"gitlab.com/codearena.net/internal/adapter/crypto"
	"gitlab.com/codearena.net/internal/adapter/judge0"
	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/adapter/postgres/playlistrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/schema"
	"gitlab.com/codearena.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codearena.net/internal/adapter/redis/problemcache"
	"gitlab.com/codearena.net/internal/config"
	auth2 "gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/core/services/evaluation"
	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/core/services/submission"
	logger2 "gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/handlers/auth"
	http2 "gitlab.com/codearena.net/internal/http"
)

const serviceName = "codearena"

func main() {
	app := &cli.Command{
		Name:  serviceName,
		Usage: "code judging backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   "local",
				Usage:   "load settings from <env>.env before reading the environment",
				Sources: cli.EnvVars("APP_ENV"),
			},
		},
		Before: loadEnv,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create the database schema",
				Action: migrate,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger2.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func loadEnv(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	file := cmd.String("env") + ".env"
	if err := godotenv.Load(file); err != nil {
		logger2.Warn("Env file not loaded, using process environment", "file", file, "error", err)
	}
	return ctx, nil
}

func serve(ctx context.Context, _ *cli.Command) error {
	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLoggerWithLevel(sysCfg.DebugMode)
	logger2.Logger = logger
	defer logger.Sync()

	logger.Info("Starting code judging service")
	if pollBound, deadline := sysCfg.JudgeConfig.MaxPollDuration(), sysCfg.HttpConfig.RequestTimeout(); deadline > 0 && pollBound > deadline {
		logger.Warn("Judge poll bound exceeds the request deadline, slow batches are cut at the deadline",
			"pollBound", pollBound, "requestDeadline", deadline)
	}

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		return fmt.Errorf("set up database: %w", err)
	}
	defer db.Close()

	redisClient := setupRedis(sysCfg.RedisConfig)
	defer redisClient.Close()

	// SECONDARY PORTS
	schemaName := sysCfg.PostgresConfig.Schema
	userPort := userrepository.New(db, logger, schemaName)
	problemRepo := problemrepository.NewProblemRepository(db, logger, schemaName)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger, schemaName)
	playlistRepo := playlistrepository.NewPlaylistRepository(db, logger, schemaName)
	problemCache := problemcache.NewProblemCache(redisClient, sysCfg.RedisConfig.ProblemTTL, logger)
	judgeClient := judge0.NewClient(sysCfg.JudgeConfig, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	evaluator := evaluation.NewEvaluationService(judgeClient, logger)
	submissionSvc := submission.NewSubmissionService(evaluator, judgeClient, problemRepo, submissionRepo, logger)
	problemSvc := problem.NewProblemService(evaluator, judgeClient, problemRepo, problemCache, sysCfg.ProblemSvcCfg, logger)
	playlistSvc := playlist.NewPlaylistService(playlistRepo, logger)

	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	authDeps := &auth.ServiceDependencies{
		LocalAuthService: localAuth,
		Registration:     localAuth,
	}
	if sysCfg.GGAuthConfig.Enabled() {
		authDeps.GGAuthService = auth2.NewGoogleAuthService(userPort, jwtProvider)
	}

	serviceProvider := http2.NewServiceProvider(
		submissionSvc,
		problemSvc,
		playlistSvc,
		authDeps,
		auth2.NewAuthenticator(userPort, jwtProvider),
		map[string]http2.HealthCheck{
			"postgres": db.PingContext,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	)

	//server
	httpServer := http2.NewServer(sysCfg, serviceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		return fmt.Errorf("init http server: %w", err)
	}
	serveErr := httpServer.Start(ctx)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("successfully shutdown server")
	return nil
}

func migrate(ctx context.Context, _ *cli.Command) error {
	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLoggerWithLevel(sysCfg.DebugMode)
	defer logger.Sync()

	db, err := setupDatabase(ctx, sysCfg.PostgresConfig)
	if err != nil {
		return fmt.Errorf("set up database: %w", err)
	}
	defer db.Close()

	return schema.Migrate(ctx, db, sysCfg.PostgresConfig.Schema, logger)
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
