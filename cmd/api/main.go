// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/library-api/internal/admin"
	"github.com/carterperez-dev/library-api/internal/auth"
	"github.com/carterperez-dev/library-api/internal/author"
	"github.com/carterperez-dev/library-api/internal/book"
	"github.com/carterperez-dev/library-api/internal/card"
	"github.com/carterperez-dev/library-api/internal/config"
	"github.com/carterperez-dev/library-api/internal/core"
	"github.com/carterperez-dev/library-api/internal/health"
	"github.com/carterperez-dev/library-api/internal/loan"
	"github.com/carterperez-dev/library-api/internal/middleware"
	"github.com/carterperez-dev/library-api/internal/server"
	"github.com/carterperez-dev/library-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKeys := flag.Bool("generate-keys", false,
		"generate an ES256 key pair at the configured paths and exit")
	flag.Parse()

	if *generateKeys {
		if err := runGenerateKeys(*configPath); err != nil {
			slog.Error("key generation error", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runGenerateKeys(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := auth.GenerateKeyPair(
		cfg.JWT.PrivateKeyPath,
		cfg.JWT.PublicKeyPath,
	); err != nil {
		return err
	}

	slog.Info("key pair generated",
		"private_key", cfg.JWT.PrivateKeyPath,
		"public_key", cfg.JWT.PublicKeyPath,
	)
	return nil
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(db.DB, userRepo)
	userHandler := user.NewHandler(userSvc)

	cardRepo := card.NewRepository(db.DB)
	cardSvc := card.NewService(cardRepo)
	cardHandler := card.NewHandler(cardSvc)

	authorRepo := author.NewRepository(db.DB)
	authorSvc := author.NewService(authorRepo)
	authorHandler := author.NewHandler(authorSvc)

	catalog := book.NewGoogleBooksCatalog(cfg.GoogleBooks)
	bookRepo := book.NewRepository(db.DB)
	bookSvc := book.NewService(db.DB, bookRepo, authorRepo, catalog)
	bookHandler := book.NewHandler(bookSvc)

	loanRepo := loan.NewRepository(db.DB)
	loanSvc := loan.NewService(loanRepo, bookSvc, cfg.Loan.Period)
	loanHandler := loan.NewHandler(loanSvc)

	authSvc := auth.NewService(db.DB, userRepo, jwtManager, logger)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Cards:      cardSvc,
		Loans:      loanSvc,
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	// Role-scaled limits ride behind the authenticator so every guarded
	// subtree shares one composed middleware.
	roleLimiter := middleware.RoleRateLimiter(
		redis.Client, middleware.DefaultRoleLimits)
	verify := middleware.Authenticator(jwtManager)
	authenticated := func(next http.Handler) http.Handler {
		return verify(roleLimiter(next))
	}
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticated)
		userHandler.RegisterRoutes(r, authenticated)
		authorHandler.RegisterRoutes(r, authenticated)
		bookHandler.RegisterRoutes(r, authenticated)
		cardHandler.RegisterRoutes(r, authenticated)
		loanHandler.RegisterRoutes(r, authenticated)
		adminHandler.RegisterRoutes(r, authenticated, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
