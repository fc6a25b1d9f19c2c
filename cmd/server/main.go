package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	delegationhandler "vofmun/internal/delegation/handler"
	delegationservice "vofmun/internal/delegation/service"
	delegationstore "vofmun/internal/delegation/store"
	"vofmun/internal/experience"
	"vofmun/internal/platform/config"
	"vofmun/internal/platform/httpserver"
	"vofmun/internal/platform/logger"
	"vofmun/internal/platform/metrics"
	"vofmun/internal/portal"
	"vofmun/internal/portal/token"
	"vofmun/internal/ratelimit"
	"vofmun/internal/referral"
	registrationhandler "vofmun/internal/registration/handler"
	registrationservice "vofmun/internal/registration/service"
	registrationstore "vofmun/internal/registration/store"
	"vofmun/internal/storage"
	httptransport "vofmun/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence: PostgreSQL when configured, in-memory otherwise so the
	// service can run locally without infrastructure.
	var (
		users       registrationservice.UserStore
		usersPortal portal.RegistrationStore
		delegations delegationservice.DelegationStore
		delsPortal  portal.DelegationStore
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		userStore := registrationstore.NewPostgresStore(pool)
		delegationStore := delegationstore.NewPostgresStore(pool)
		users, usersPortal = userStore, userStore
		delegations, delsPortal = delegationStore, delegationStore
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		userStore := registrationstore.NewMemoryStore()
		delegationStore := delegationstore.NewMemoryStore()
		users, usersPortal = userStore, userStore
		delegations, delsPortal = delegationStore, delegationStore
	}

	var objects storage.ObjectStore
	if cfg.StorageEndpoint != "" {
		oss, err := storage.NewOSS(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey)
		if err != nil {
			log.Error("failed to dial object storage", "error", err)
			os.Exit(1)
		}
		objects = oss
	} else {
		log.Warn("STORAGE_ENDPOINT not set, using in-memory object store")
		objects = storage.NewInMemoryStore(cfg.PaymentProofBucket, cfg.DelegationBucket)
	}

	var counter ratelimit.Counter
	if cfg.RedisAddr != "" {
		counter = ratelimit.NewRedisCounter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		counter = ratelimit.NewMemoryCounter()
	}
	limiter := ratelimit.NewLimiter(counter, int64(cfg.SubmitRateLimit), cfg.SubmitRateWindow, log)

	signupSvc := registrationservice.New(users, objects, cfg.PaymentProofBucket,
		registrationservice.WithLogger(log), registrationservice.WithMetrics(m))
	delegationSvc := delegationservice.New(delegations, objects, cfg.DelegationBucket,
		delegationservice.WithLogger(log), delegationservice.WithMetrics(m))

	var generator experience.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := experience.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Error("failed to dial gemini", "error", err)
			os.Exit(1)
		}
		defer func() { _ = gemini.Close() }()
		generator = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set, experience parsing disabled")
		generator = experience.UnconfiguredGenerator{}
	}
	experienceSvc := experience.NewService(generator,
		experience.WithLogger(log), experience.WithMetrics(m))

	tokens := token.NewService(cfg.JWTSigningKey, cfg.PortalTokenTTL)
	portalSvc := portal.NewService(cfg.PortalPasswordHash, tokens, usersPortal, delsPortal, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:  log,
		Metrics: m,
		Submission: []httptransport.Registrar{
			registrationhandler.New(signupSvc, log),
			delegationhandler.New(delegationSvc, log),
			experience.NewHandler(experienceSvc, log),
		},
		Open: []httptransport.Registrar{
			referral.NewHandler(log),
			portal.NewHandler(portalSvc, tokens, log),
		},
		SubmitLimiter: limiter.Middleware,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
