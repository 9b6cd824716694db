package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ErlanBelekov/project-tracker/config"
	"github.com/ErlanBelekov/project-tracker/internal/email"
	"github.com/ErlanBelekov/project-tracker/internal/health"
	"github.com/ErlanBelekov/project-tracker/internal/infrastructure"
	ctxlog "github.com/ErlanBelekov/project-tracker/internal/log"
	"github.com/ErlanBelekov/project-tracker/internal/metrics"
	"github.com/ErlanBelekov/project-tracker/internal/password"
	"github.com/ErlanBelekov/project-tracker/internal/session"
	"github.com/ErlanBelekov/project-tracker/internal/stats"
	httptransport "github.com/ErlanBelekov/project-tracker/internal/transport/http"
	"github.com/ErlanBelekov/project-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/project-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := infrastructure.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer store.Close()
	logger.Info("store ready", "driver", store.Driver)

	tokens := session.NewCodec([]byte(cfg.JWTSecret), cfg.SessionTTL)
	mailer := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.EmailFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(store.Users, password.NewHasher(cfg.BcryptCost), tokens, mailer, logger)
	authHandler := handler.NewAuthHandler(authUsecase, cfg.SessionTTL, cfg.SecureCookies(), logger)

	// Projects
	projectUsecase := usecase.NewProjectUsecase(store.Projects)
	projectHandler := handler.NewProjectHandler(projectUsecase, logger)

	deps := httptransport.RouterDeps{
		Logger:         logger,
		AuthHandler:    authHandler,
		ProjectHandler: projectHandler,
		Tokens:         tokens,
		HSTS:           cfg.SecureCookies(),
	}
	if cfg.VerifySessionUser {
		deps.SessionUsers = store.Users
	}

	metrics.Register()
	checker := health.NewChecker(store.Driver, store, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		refresher := stats.NewRefresher(store.Projects, metrics.Projects, logger)
		if err := refresher.Start(ctx, cfg.StatsSchedule); err != nil {
			logger.Error("stats refresher", "error", err)
		}
	}()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	wg.Wait()
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
