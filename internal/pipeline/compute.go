package pipeline

import (
	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
	"github.com/couchcryptid/microplastics-etl/internal/indices"
	"github.com/couchcryptid/microplastics-etl/internal/viz"
)

// Output is everything one run derives from the source table.
type Output struct {
	Dataset   domain.Dataset
	Stats     domain.NormalizeStats
	Results   indices.Results
	Documents []document.Document
}

// Compute normalizes the table, runs every metric engine and projection, and
// assembles the output documents in write order. It performs no I/O.
func Compute(table domain.Table, w indices.Weights, builder *viz.Builder) Output {
	ds, stats := domain.Normalize(table)
	results := indices.Compute(ds, w)

	byName := map[string]document.Document{}
	for _, d := range builder.Build(ds, results) {
		byName[d.Name] = d
	}
	for _, d := range []document.Document{
		indices.ByYearDocument(results),
		indices.ByYearRegionDocument(results),
		indices.MetricsDocument(ds, results),
	} {
		byName[d.Name] = d
	}

	docs := make([]document.Document, 0, len(document.Names))
	for _, name := range document.Names {
		if d, ok := byName[name]; ok {
			docs = append(docs, d)
		}
	}
	return Output{Dataset: ds, Stats: stats, Results: results, Documents: docs}
}
