package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todolist/internal/adapter/http/routes"

	"todolist/pkg/config"
	"todolist/pkg/telemetry"
)

func StartServer(metrics *telemetry.AppMetrics, logger *config.LokiLogger) {
	StartServerWithConfig(metrics, logger, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *telemetry.AppMetrics, logger *config.LokiLogger, cfg *config.AppConfig) {
	container, cleanup, err := NewContainerFromEnv(context.Background(), logger)

	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return
	}

	defer cleanup()

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		TodoHandler: container.TodoHandler,
	}, metrics, logger, cfg)

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"cache_enabled", cfg.CacheEnabled)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
