package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gamereviews/backend/internal/catalog"
	"gamereviews/backend/internal/config"
	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/handler"
	"gamereviews/backend/internal/logger"
	"gamereviews/backend/internal/server"
	"gamereviews/backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func init() {
	config.LoadConfig()
}

// @title           Game Reviews API
// @version         1.0
// @description     JSON access to the games, reviewers, reviews and tags of the review board.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg := config.AppConfig

	zapLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer zapLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the database
	if err := database.Connect(cfg.DatabaseURL, zapLogger, logger.MapGormLogLevel(cfg.DBLogLevel)); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	handler.Catalog = newCatalog(cfg, zapLogger)

	tmpl, err := web.Templates()
	if err != nil {
		zapLogger.Fatal("Failed to parse templates", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(zapLogger, tmpl, []byte(cfg.SessionSecret)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("Server is running",
			zap.String("addr", srv.Addr),
			zap.String("swagger", "/swagger/index.html"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
}

// newCatalog builds the catalog client, wrapped in a Redis cache when REDIS_URL is set.
func newCatalog(cfg *config.Config, zapLogger *zap.Logger) catalog.Searcher {
	if cfg.CatalogAPIKey == "" {
		zapLogger.Warn("CATALOG_API_KEY is not set; game searches will fail")
	}

	client := catalog.NewClient(catalog.Options{
		APIKey:  cfg.CatalogAPIKey,
		BaseURL: cfg.CatalogBaseURL,
		Timeout: cfg.CatalogTimeout,
		Logger:  zapLogger,
	})
	if cfg.RedisURL == "" {
		return client
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zapLogger.Warn("Ignoring invalid REDIS_URL", zap.Error(err))
		return client
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		rdb.Close()
		return client
	}

	zapLogger.Info("Catalog search cache enabled", zap.Duration("ttl", cfg.CatalogCacheTTL))
	return catalog.NewCachedSearcher(client, catalog.NewRedisCache(rdb), cfg.CatalogCacheTTL, zapLogger)
}
