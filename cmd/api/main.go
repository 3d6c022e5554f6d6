package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todolist/internal/adapter/http"
	"todolist/pkg/config"
	"todolist/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	logger, err := config.NewLokiLogger("todolist", os.Getenv("LOKI_URL"))

	if err != nil {
		log.Fatal("Failed to initialize Loki logger:", err)
	}

	defer logger.Sync()

	cfg := config.GetDefaultConfig()

	tel, err := telemetry.InitTelemetry(telemetry.TelemetryConfig{
		ServiceName:    "todolist",
		ServiceVersion: "1.0.0",
		MetricsPort:    "9091",
		OTLPEndpoint:   "localhost:4317",
		Environment:    cfg.Environment,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go api.StartServerWithConfig(metrics, logger, cfg)

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
