package indices

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// dateLayout renders dates as ISO-8601 local date-times.
const dateLayout = "2006-01-02T15:04:05"

// Results holds every engine's output for one run.
type Results struct {
	ICR              []ICRRecord
	ByYear           []YearRecord
	ByYearRegion     []RegionYearRecord
	DepthCorrelation DepthCorrelation
	Completeness     []CompletenessRecord
	Diversity        []DiversityRecord
	IGRM             []IGRMRecord
}

// Compute runs every engine over the dataset. IGRM runs last because it
// joins three of the others.
func Compute(ds domain.Dataset, w Weights) Results {
	r := Results{
		ICR:              ComputeICR(ds, w),
		ByYear:           ComputeTCT(ds),
		ByYearRegion:     ComputeTCTByRegion(ds),
		DepthCorrelation: ComputeDepthCorrelation(ds),
		Completeness:     ComputeCompleteness(ds, w),
		Diversity:        ComputeDiversity(ds),
	}
	r.IGRM = ComputeIGRM(ds, r.ICR, r.Completeness, r.Diversity, w)
	return r
}

// RunSummary is the headline block of the metrics document.
type RunSummary struct {
	TotalSamples       int
	MinDate            *time.Time
	MaxDate            *time.Time
	NRegions           int
	NOceans            int
	NCountries         int
	AvgCompleteness    *float64
	AvgMethodDiversity *float64
	AvgIGRM            *float64
}

// Summarize computes totals, the observed date range and per-metric means.
// Averages are nil when their source table is empty.
func Summarize(ds domain.Dataset, r Results) RunSummary {
	s := RunSummary{TotalSamples: len(ds.Observations)}
	regions := map[string]struct{}{}
	oceans := map[string]struct{}{}
	countries := map[string]struct{}{}
	for _, o := range ds.Observations {
		addLabel(regions, o.Region)
		addLabel(oceans, o.Ocean)
		addLabel(countries, o.Country)
		if o.Date == nil {
			continue
		}
		if s.MinDate == nil || o.Date.Before(*s.MinDate) {
			s.MinDate = o.Date
		}
		if s.MaxDate == nil || o.Date.After(*s.MaxDate) {
			s.MaxDate = o.Date
		}
	}
	s.NRegions, s.NOceans, s.NCountries = len(regions), len(oceans), len(countries)

	comp := make([]float64, len(r.Completeness))
	for i, c := range r.Completeness {
		comp[i] = c.Index
	}
	div := make([]float64, len(r.Diversity))
	for i, d := range r.Diversity {
		div[i] = d.Normalized
	}
	igrm := make([]float64, len(r.IGRM))
	for i, g := range r.IGRM {
		igrm[i] = g.IGRM
	}
	s.AvgCompleteness = mean(comp)
	s.AvgMethodDiversity = mean(div)
	s.AvgIGRM = mean(igrm)
	return s
}

func addLabel(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &m
}

func formatDate(t *time.Time) document.Value {
	if t == nil {
		return document.Null()
	}
	return document.String(t.Format(dateLayout))
}

// Value converts the summary to its document form.
func (s RunSummary) Value() document.Value {
	return document.Object(
		document.F("totalSamples", document.Int(s.TotalSamples)),
		document.F("dateRange", document.Object(
			document.F("min", formatDate(s.MinDate)),
			document.F("max", formatDate(s.MaxDate)),
		)),
		document.F("nRegions", document.Int(s.NRegions)),
		document.F("nOceans", document.Int(s.NOceans)),
		document.F("nCountries", document.Int(s.NCountries)),
		document.F("avgCompleteness", document.OptFloat(s.AvgCompleteness)),
		document.F("avgMethodDiversity", document.OptFloat(s.AvgMethodDiversity)),
		document.F("avgIGRM", document.OptFloat(s.AvgIGRM)),
	)
}

// MetricsDocument bundles the metric tables and the run summary.
func MetricsDocument(ds domain.Dataset, r Results) document.Document {
	return document.Document{
		Name: document.Metrics,
		Body: document.Object(
			document.F("ICR", listOf(r.ICR, ICRRecord.Value)),
			document.F("depthCorrelation", r.DepthCorrelation.Value()),
			document.F("dataCompleteness", listOf(r.Completeness, CompletenessRecord.Value)),
			document.F("methodDiversity", listOf(r.Diversity, DiversityRecord.Value)),
			document.F("IGRM", listOf(r.IGRM, IGRMRecord.Value)),
			document.F("summary", Summarize(ds, r).Value()),
		),
	}
}

// ByYearDocument is the global temporal change table.
func ByYearDocument(r Results) document.Document {
	return document.Document{Name: document.ByYear, Body: listOf(r.ByYear, YearRecord.Value)}
}

// ByYearRegionDocument is the per-region temporal change table.
func ByYearRegionDocument(r Results) document.Document {
	return document.Document{Name: document.ByYearRegion, Body: listOf(r.ByYearRegion, RegionYearRecord.Value)}
}

func listOf[T any](rows []T, conv func(T) document.Value) document.Value {
	items := make([]document.Value, len(rows))
	for i, row := range rows {
		items[i] = conv(row)
	}
	return document.List(items...)
}
