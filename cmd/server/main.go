package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pedrohsilva/tarefas-api/config"
	"github.com/pedrohsilva/tarefas-api/internal/auth"
	"github.com/pedrohsilva/tarefas-api/internal/health"
	"github.com/pedrohsilva/tarefas-api/internal/infrastructure/postgres"
	ctxlog "github.com/pedrohsilva/tarefas-api/internal/log"
	"github.com/pedrohsilva/tarefas-api/internal/metrics"
	httptransport "github.com/pedrohsilva/tarefas-api/internal/transport/http"
	"github.com/pedrohsilva/tarefas-api/internal/transport/http/handler"
	"github.com/pedrohsilva/tarefas-api/internal/usecase"
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

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	loc, err := cfg.TokenLocation()
	if err != nil {
		stop()
		log.Fatalf("config: %v", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL(), loc)

	// Users / accounts
	userRepo := postgres.NewUserRepository(pool, hasher)
	accountUsecase := usecase.NewAccountUsecase(userRepo, tokens, hasher)
	authHandler := handler.NewAuthHandler(accountUsecase, logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Tasks
	taskRepo := postgres.NewTaskRepository(pool)
	taskUsecase := usecase.NewTaskUsecase(taskRepo)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, taskHandler, userHandler, tokens, userRepo),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

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
