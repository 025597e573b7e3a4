package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/collection"
	"pokecatcher/internal/httpx"
	"pokecatcher/internal/platform/crypto"
	"pokecatcher/internal/platform/mockapi"
	"pokecatcher/internal/platform/pokeapi"
	"pokecatcher/internal/roster"
)

func main() {
	loadEnvFiles()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func run(cfg Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		cache catalog.Cache
		ready func(context.Context) error
	)
	if cfg.DBDSN != "" {
		dbPool, err := openDB(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer dbPool.Close()
		logger.Info("catalog cache enabled", zap.String("dsn", redactDSN(cfg.DBDSN)))
		cache = catalog.NewPostgresRepo(dbPool, cfg.CacheFreshness, 2*time.Second)
		ready = dbPool.Ping
	}

	pokeClient := pokeapi.NewClient(pokeapi.Options{
		BaseURL:    cfg.PokeAPIBaseURL,
		UserAgent:  "pokecatcher/1.0",
		RPS:        cfg.PokeAPIRPS,
		MaxRetries: cfg.PokeAPIMaxRetries,
		Timeout:    cfg.UpstreamTimeout,
	})
	store := mockapi.NewClient(cfg.MockAPIBaseURL, cfg.UpstreamTimeout)

	catalogService := catalog.NewService(pokeClient, cache, logger.Named("catalog"), catalog.Config{
		PageSize:    cfg.CatalogPageSize,
		Concurrency: cfg.CatalogConcurrency,
	})
	collectionService := collection.NewService(store, logger.Named("collection"))
	rosterService := roster.NewService(collectionService, store, logger.Named("roster"))

	router := newRouter(handlers{
		catalog:    catalog.NewHTTPHandler(catalogService),
		jobs:       catalog.NewJobHandler(catalogService, cfg.InternalSecret),
		collection: collection.NewHTTPHandler(collectionService, catalogService),
		roster:     roster.NewHTTPHandler(rosterService),
		verifier:   crypto.NewTrainerVerifier(cfg.JWTSecret),
		ready:      ready,
	})

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateBurst)
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger.Named("http")),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)

	go preloadCatalog(ctx, catalogService, cfg.CatalogPreloadPages, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// preloadCatalog loads the first pages so the catalog is not empty on the
// first request.
func preloadCatalog(ctx context.Context, svc *catalog.Service, pages int, logger *zap.Logger) {
	for i := 0; i < pages; i++ {
		res, err := svc.LoadNextPage(ctx)
		if err != nil {
			logger.Warn("catalog preload stopped", zap.Int("page", i+1), zap.Error(err))
			return
		}
		if res.Exhausted {
			return
		}
	}
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}
