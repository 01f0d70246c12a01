package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"bloodcorner/internal/blobstore"
	"bloodcorner/internal/collection"
	"bloodcorner/internal/http/handlers"
	"bloodcorner/internal/http/httpapi"
	"bloodcorner/internal/imaging"
	"bloodcorner/internal/infra"
	"bloodcorner/internal/infra/geoip"
	"bloodcorner/internal/ledger"
	"bloodcorner/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open snapshot store")
	}
	defer blobs.Close()

	registry := prometheus.NewRegistry()
	svc, err := ledger.NewService(ctx, collection.NewStore(blobs, logger), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load collections")
	}
	svc = svc.WithMetrics(ledger.NewMetrics(registry))

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(svc, imaging.NewCompressor(), logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  lookup,
		Metrics:        registry,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("store", cfg.StoreBackend).Msg("API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newBlobStore picks the snapshot backend from configuration.
func newBlobStore(ctx context.Context, cfg *infra.Config) (blobstore.Store, error) {
	switch cfg.StoreBackend {
	case infra.StoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return blobstore.NewRedisStore(client, "bloodcorner:"), nil
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return blobstore.NewPostgresStore(ctx, pool)
	default:
		return blobstore.NewFileStore(cfg.DataDir, cfg.StorageQuotaBytes)
	}
}
