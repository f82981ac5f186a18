// Command server runs the meme backend: REST API over the image record
// store, the background cleanup scheduler, and the supporting observability
// endpoints.
//
// @title       Meme Backend API
// @version     1.0
// @description REST API for persisting and composing captioned images.
// @BasePath    /api
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
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-meme-backend/internal/cleanup"
	"github.com/tbourn/go-meme-backend/internal/config"
	httpapi "github.com/tbourn/go-meme-backend/internal/http"
	"github.com/tbourn/go-meme-backend/internal/meme"
	"github.com/tbourn/go-meme-backend/internal/observability"
	"github.com/tbourn/go-meme-backend/internal/repo"
	"github.com/tbourn/go-meme-backend/internal/services"
	"github.com/tbourn/go-meme-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		sysutil.UsePrettyConsole()
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOTel(sctx)
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Fatal().Err(err).Msg("gorm tracing plugin failed")
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	// The recurring sweep only runs in interval mode; in external mode the
	// /internal/cleanup trigger drives the same store operation.
	imgSvc := &services.ImageService{DB: db, Render: meme.Options{
		Width:   cfg.Render.Width,
		Quality: cfg.Render.JPEGQuality,
		Wrap:    cfg.Render.Wrap,
	}}
	var sched *cleanup.Scheduler
	if cfg.Cleanup.Mode == config.CleanupModeInterval {
		sched = cleanup.New(imgSvc, cfg.Cleanup.Interval, cfg.Cleanup.Retention)
		sched.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if sched != nil {
		sched.Stop()
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	os.Exit(0)
}
