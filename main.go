package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"

	"gachigayo/config"
	"gachigayo/handlers"
	"gachigayo/monitoring"
	"gachigayo/security"
	"gachigayo/services"
	"gachigayo/services/backend"
	"gachigayo/utils"
)

func main() {
	cfg := config.LoadConfig()

	logLevel := slog.LevelInfo
	if cfg.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	backendClient := backend.New(&backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
	})

	sessionService := services.NewSessionService(redisClient, cfg.SessionTTL)
	authService := services.NewAuthService(backendClient, sessionService)
	seniorService := services.NewSeniorService(backendClient, redisClient, cfg.CreateLockTTL)
	helperService := services.NewHelperService(backendClient)

	e := echo.New()
	e.Use(monitoring.RequestMetrics())

	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	session := handlers.SessionMiddleware(sessionService)
	loginLimiter := security.NewLoginRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow)

	handlers.NewAuthHandler(authService).RegisterRoutes(api, loginLimiter.Middleware())
	handlers.NewSeniorHandler(seniorService).RegisterRoutes(api, session)
	handlers.NewHelperHandler(helperService).RegisterRoutes(api, session)

	var metricsSrv *http.Server
	if cfg.EnableMetrics {
		metricsSrv = monitoring.StartMetricsServer(cfg.MetricsPort)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			slog.Error("metrics server shutdown failed", "error", err)
		}
	}
}
