package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
	"github.com/couchcryptid/microplastics-etl/internal/indices"
	"github.com/couchcryptid/microplastics-etl/internal/observability"
	"github.com/couchcryptid/microplastics-etl/internal/viz"
)

// Extractor reads the whole raw source table.
type Extractor interface {
	Extract(ctx context.Context) (domain.Table, error)
}

// Loader persists or publishes the documents of a run.
type Loader interface {
	Name() string
	Load(ctx context.Context, docs []document.Document) error
}

// Report summarizes a completed run.
type Report struct {
	Run       RunInfo
	Stats     domain.NormalizeStats
	Documents int
	Duration  time.Duration
}

// Pipeline orchestrates the extract-compute-load pass.
type Pipeline struct {
	extractor Extractor
	loaders   []Loader
	builder   *viz.Builder
	weights   indices.Weights
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the wall clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, loaders []Loader, builder *viz.Builder, w indices.Weights, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: e,
		loaders:   loaders,
		builder:   builder,
		weights:   w,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a run has completed successfully, or an
// error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run executes one full pass. Any extract or load failure aborts the run;
// documents already handed to an earlier loader are not rolled back.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	run := RunInfo{ID: uuid.NewString(), StartedAt: p.clock.Now()}
	ctx = WithRunInfo(ctx, run)
	logger := p.logger.With("run_id", run.ID)

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	report, err := p.run(ctx, run, logger)
	if err != nil {
		p.metrics.RunFailures.Inc()
		logger.Error("pipeline run failed", "error", err)
		return report, err
	}

	report.Duration = p.clock.Since(run.StartedAt)
	p.metrics.RunDuration.Observe(report.Duration.Seconds())
	p.ready.Store(true)
	logger.Info("pipeline run complete",
		"documents", report.Documents,
		"duration", report.Duration,
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, run RunInfo, logger *slog.Logger) (Report, error) {
	report := Report{Run: run}

	// Extractor errors already name the source.
	table, err := p.extractor.Extract(ctx)
	if err != nil {
		return report, err
	}
	logger.Info("source extracted", "stage", "extract", "rows", len(table.Records), "columns", len(table.Columns))

	out := Compute(table, p.weights, p.builder)
	report.Stats = out.Stats
	p.recordNormalize(out.Stats)
	logger.Info("records normalized", "stage", "normalize",
		"rows_read", out.Stats.Read,
		"rows_retained", out.Stats.Retained,
		"rows_dropped", out.Stats.Dropped,
		"dates_parsed", out.Stats.DatesParsed,
		"dates_missing", out.Stats.DatesMissing,
	)
	p.recordRegions(out.Results)
	logger.Info("metrics computed", "stage", "compute",
		"icr_regions", len(out.Results.ICR),
		"years", len(out.Results.ByYear),
		"completeness_regions", len(out.Results.Completeness),
		"diversity_regions", len(out.Results.Diversity),
		"igrm_regions", len(out.Results.IGRM),
		"depth_pairs", out.Results.DepthCorrelation.NSamples,
	)

	for _, l := range p.loaders {
		if err := l.Load(ctx, out.Documents); err != nil {
			return report, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		p.metrics.DocumentsWritten.WithLabelValues(l.Name()).Add(float64(len(out.Documents)))
		logger.Info("documents loaded", "stage", "load", "sink", l.Name(), "documents", len(out.Documents))
	}
	report.Documents = len(out.Documents)
	return report, nil
}

func (p *Pipeline) recordNormalize(s domain.NormalizeStats) {
	p.metrics.RowsRead.Add(float64(s.Read))
	p.metrics.RowsRetained.Add(float64(s.Retained))
	p.metrics.RowsDropped.Add(float64(s.Dropped))
	p.metrics.DatesMissing.Add(float64(s.DatesMissing))
}

func (p *Pipeline) recordRegions(r indices.Results) {
	p.metrics.Regions.WithLabelValues("icr").Set(float64(len(r.ICR)))
	p.metrics.Regions.WithLabelValues("completeness").Set(float64(len(r.Completeness)))
	p.metrics.Regions.WithLabelValues("diversity").Set(float64(len(r.Diversity)))
	p.metrics.Regions.WithLabelValues("igrm").Set(float64(len(r.IGRM)))
}
