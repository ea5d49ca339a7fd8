package main

import (
	"log/slog"

	"github.com/couchcryptid/microplastics-etl/internal/adapter/filesystem"
	kafkaadapter "github.com/couchcryptid/microplastics-etl/internal/adapter/kafka"
	"github.com/couchcryptid/microplastics-etl/internal/adapter/tabular"
	"github.com/couchcryptid/microplastics-etl/internal/config"
	"github.com/couchcryptid/microplastics-etl/internal/observability"
	"github.com/couchcryptid/microplastics-etl/internal/pipeline"
	"github.com/couchcryptid/microplastics-etl/internal/viz"
)

// newMetrics is replaced in tests, which build several apps per process.
var newMetrics = observability.NewMetrics

// app is one wired pipeline plus the resources that must be released.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *observability.Metrics
	pipeline *pipeline.Pipeline
	kafka    *kafkaadapter.Writer
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg)
	metrics := newMetrics()

	reader := tabular.NewReader(cfg.InputPath, cfg.InputSheet, logger)
	loaders := []pipeline.Loader{filesystem.NewWriter(cfg.OutputDir, logger)}

	a := &app{cfg: cfg, logger: logger, metrics: metrics}
	if cfg.KafkaEnabled {
		a.kafka = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, a.kafka)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	builder := viz.NewBuilder(viz.NewRandomSampler(cfg.SampleSeed), cfg.ScatterSampleCap, cfg.ParallelSampleCap)
	a.pipeline = pipeline.New(reader, loaders, builder, cfg.Weights, logger, metrics)
	return a, nil
}

// exportMetrics writes the textfile exposition when configured. Failure is
// logged, never fatal: the documents are already written.
func (a *app) exportMetrics() {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		a.logger.Error("metrics textfile export failed", "path", a.cfg.MetricsTextfile, "error", err)
	}
}

func (a *app) close() {
	if a.kafka == nil {
		return
	}
	if err := a.kafka.Close(); err != nil {
		a.logger.Error("kafka writer close error", "error", err)
	}
}
