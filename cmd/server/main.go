package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"fastkyc/internal/account"
	"fastkyc/internal/blob"
	"fastkyc/internal/jwttoken"
	"fastkyc/internal/onboarding"
	"fastkyc/internal/platform/config"
	"fastkyc/internal/platform/httpserver"
	"fastkyc/internal/platform/logger"
	"fastkyc/internal/platform/metrics"
	"fastkyc/internal/platform/middleware"
	platformredis "fastkyc/internal/platform/redis"
	"fastkyc/internal/transport/chat"
	"fastkyc/internal/transport/ops"
	"fastkyc/internal/verification"
	"fastkyc/internal/verification/adversemedia"
	"fastkyc/internal/verification/docextract"
	"fastkyc/internal/verification/emailcheck"
)

// main wires dependencies and owns process lifecycle. Business logic lives in
// the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	healthChecks := map[string]ops.HealthChecker{}

	// Account store: postgres when configured, in-memory for development.
	var accounts account.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := account.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		accounts = pg
		healthChecks["postgres"] = healthFunc(db.PingContext)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory account store")
		accounts = account.NewInMemoryStore()
	}

	// Session store: redis when configured, in-memory for development.
	var sessions onboarding.SessionStore
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = onboarding.NewRedisSessionStore(redisClient.Client, cfg.Redis.SessionTTL)
		healthChecks["redis"] = redisClient
	} else {
		log.Warn("REDIS_URL not set, using in-memory session store")
		sessions = onboarding.NewInMemorySessionStore()
	}

	blobs, err := blob.NewS3Store(ctx, cfg.Blob)
	if err != nil {
		log.Error("failed to configure blob storage", "error", err)
		os.Exit(1)
	}

	extractor := docextract.NewClient(cfg.Providers.VisionURL, cfg.Providers.VisionAPIKey, cfg.Providers.VisionModel)
	searcher := adversemedia.NewClient(adversemedia.Config{
		URL:           cfg.Providers.BrowseURL,
		APIKey:        cfg.Providers.BrowseAPIKey,
		Endpoint:      cfg.Providers.BrowseEndpoint,
		MaxIterations: cfg.Providers.BrowseIterations,
	})
	emailVerifier := emailcheck.NewClient(cfg.Providers.EmailCheckURL, cfg.Providers.EmailCheckAPIKey)

	worker := verification.NewWorker(extractor, searcher, accounts, cfg.VerifyQueueDepth,
		verification.WithLogger(log),
		verification.WithMetrics(m),
		verification.WithWorkers(cfg.VerifyWorkers),
	)

	controller := onboarding.New(accounts, blobs, emailVerifier, worker, sessions,
		onboarding.WithLogger(log),
		onboarding.WithMetrics(m),
	)

	messenger := chat.NewClient(cfg.Chat)
	webhook := chat.NewHandler(controller, messenger, chat.WithLogger(log))

	webhookRouter := chi.NewRouter()
	webhookRouter.Use(middleware.RequestID)
	webhookRouter.Use(middleware.Recovery(log))
	webhookRouter.Use(middleware.Logger(log))
	webhook.RegisterRoutes(webhookRouter)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "fastkyc", "fastkyc-ops")
	opsHandler := ops.NewHandler(accounts, tokens, log)
	for name, check := range healthChecks {
		opsHandler.AddHealthCheck(name, check)
	}

	opsRouter := chi.NewRouter()
	opsRouter.Use(middleware.RequestID)
	opsRouter.Use(middleware.Recovery(log))
	opsHandler.RegisterRoutes(opsRouter)

	webhookSrv := httpserver.New(cfg.WebhookAddr, webhookRouter)
	opsSrv := httpserver.New(cfg.OpsAddr, opsRouter)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting webhook server", "addr", cfg.WebhookAddr)
		if err := webhookSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting ops server", "addr", cfg.OpsAddr)
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webhookSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("webhook server shutdown failed", "error", err)
		}
		if err := opsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("ops server shutdown failed", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }
