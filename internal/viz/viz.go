// Package viz builds the auxiliary datasets consumed by the charts: sampled
// scatter and parallel-coordinate rows, per-method and per-year
// distributions, treemap and flow tables, and the regional profile table.
//
// Projections are informational. Nothing here feeds back into the metric
// engines.
package viz

import (
	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
	"github.com/couchcryptid/microplastics-etl/internal/indices"
)

// Default row caps for the sampled projections.
const (
	DefaultScatterCap  = 1000
	DefaultParallelCap = 500
)

// Builder produces the visualization documents.
type Builder struct {
	sampler     Sampler
	scatterCap  int
	parallelCap int
}

// NewBuilder creates a Builder. Non-positive caps fall back to the defaults.
func NewBuilder(sampler Sampler, scatterCap, parallelCap int) *Builder {
	if scatterCap <= 0 {
		scatterCap = DefaultScatterCap
	}
	if parallelCap <= 0 {
		parallelCap = DefaultParallelCap
	}
	return &Builder{sampler: sampler, scatterCap: scatterCap, parallelCap: parallelCap}
}

// Build returns the seven projection documents in write order.
func (b *Builder) Build(ds domain.Dataset, r indices.Results) []document.Document {
	return []document.Document{
		{Name: document.ByRegion, Body: rows(ByRegion(ds, r), RegionProfile.Value)},
		{Name: document.ScatterData, Body: rows(b.Scatter(ds), ScatterPoint.Value)},
		{Name: document.MethodData, Body: rows(MethodDistributions(ds), MethodDistribution.Value)},
		{Name: document.TreemapData, Body: rows(Treemap(ds), TreemapCell.Value)},
		{Name: document.ParallelData, Body: rows(b.Parallel(ds), ParallelRow.Value)},
		{Name: document.ViolinData, Body: rows(Violin(ds), YearDistribution.Value)},
		{Name: document.SankeyData, Body: rows(Sankey(ds), Flow.Value)},
	}
}

// sample returns the observations at the sampler's chosen indices.
func (b *Builder) sample(obs []domain.Observation, limit int) []domain.Observation {
	idx := b.sampler.Sample(len(obs), limit)
	out := make([]domain.Observation, len(idx))
	for i, j := range idx {
		out[i] = obs[j]
	}
	return out
}

func rows[T any](items []T, conv func(T) document.Value) document.Value {
	values := make([]document.Value, len(items))
	for i, item := range items {
		values[i] = conv(item)
	}
	return document.List(values...)
}
