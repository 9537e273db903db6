// Command stormimpact downloads the NOAA StormData archive, computes ranked
// public-health and economic impact summaries per event type, and writes the
// report as JSON plus bar-chart PNGs. With HTTP_ADDR set it keeps serving
// the report, health, and metrics endpoints until interrupted; with
// KAFKA_BROKERS set it also publishes the report to the sink topic.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	chartadapter "github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/chart"
	httpadapter "github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/http"
	kafkaadapter "github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/kafka"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/adapter/noaa"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/config"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/observability"
	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, metrics); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	sinks := []pipeline.ReportSink{
		chartadapter.NewRenderer(cfg.ChartDir, logger),
	}

	// Kafka publishing is feature-flagged via KAFKA_BROKERS.
	if cfg.KafkaEnabled() {
		publisher := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		sinks = append(sinks, publisher)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	dataset := filepath.Base(cfg.DataPath)
	p := pipeline.New(sinks, logger, metrics, dataset, cfg.TopK)

	// Start serving health and metrics before the batch so orchestrators
	// can probe while the dataset is still downloading.
	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	downloader := noaa.NewDownloader(cfg.DataURL, cfg.DataPath, cfg.DownloadTimeout, cfg.Progress, logger)
	path, err := downloader.Ensure(ctx)
	if err != nil {
		return fmt.Errorf("ensure dataset: %w", err)
	}

	src, err := noaa.Open(path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}

	report, runErr := p.Run(ctx, src)
	if closeErr := src.Close(); closeErr != nil {
		logger.Error("dataset close error", "error", closeErr)
	}
	if runErr != nil {
		if _, ok := p.Report(); !ok {
			return runErr
		}
		// Sink failures only: the report itself is good, keep going.
		logger.Error("some report sinks failed", "error", runErr)
	}

	if err := writeReport(cfg.ReportPath, report); err != nil {
		return err
	}
	logger.Info("report written", "path", cfg.ReportPath)

	if srv == nil {
		return nil
	}

	logger.Info("serving report", "addr", cfg.HTTPAddr)
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func writeReport(path string, report domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
