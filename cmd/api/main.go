package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/healthhub-scheduler/internal/db"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/logging"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/routes"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/timezone"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)
	defer log.Sync() //nolint:errcheck

	loc, ok := timezone.Resolve(cfg.Timezone)
	if !ok {
		log.Warn("invalid clinic timezone, falling back",
			zap.String("timezone", cfg.Timezone),
			zap.String("fallback", timezone.DefaultTimezone),
		)
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, rate limiter fails open", zap.Error(err))
		}
		defer rdb.Close()
	}

	if err := validators.Register(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Location: loc,
		Redis:    rdb,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
