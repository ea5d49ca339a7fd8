package indices

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// ImportantFields is the completeness universe. Only those present in the
// source schema are scored.
var ImportantFields = []string{
	domain.ColLatitude,
	domain.ColLongitude,
	domain.ColOcean,
	domain.ColRegion,
	domain.ColMarineSetting,
	domain.ColSamplingMethod,
	domain.ColWaterDepth,
	domain.ColMeasurement,
	domain.ColDate,
	domain.ColCountry,
	domain.ColOceanBottom,
	domain.ColSedimentDepth,
	domain.ColMeshSize,
	domain.ColUnit,
	domain.ColOrganization,
	domain.ColKeywords,
}

// CriticalFields always count towards the critical score. A critical field
// absent from the schema scores 0.
var CriticalFields = []string{
	domain.ColMeasurement,
	domain.ColLatitude,
	domain.ColLongitude,
	domain.ColDate,
}

// FieldCompleteness is the percentage of a region's records holding a value
// for one field.
type FieldCompleteness struct {
	Field   string
	Percent float64
}

// CompletenessRecord is the data completeness score of one region. Scores are
// percentages in [0, 100].
type CompletenessRecord struct {
	Key      domain.RegionKey
	NSamples int
	Fields   []FieldCompleteness
	Average  float64
	Critical float64
	Index    float64
}

// ComputeCompleteness scores each region by how many important fields its
// records fill. Regions with a missing ocean or region are skipped. The
// result is sorted by index, highest first.
func ComputeCompleteness(ds domain.Dataset, w Weights) []CompletenessRecord {
	var present []string
	for _, f := range ImportantFields {
		if ds.HasColumn(f) {
			present = append(present, f)
		}
	}

	var out []CompletenessRecord
	for _, g := range GroupByRegion(ds.Observations) {
		if !g.Key.Complete() {
			continue
		}
		out = append(out, scoreCompleteness(g, present, w))
	}
	slices.SortStableFunc(out, func(a, b CompletenessRecord) int {
		return cmp.Compare(b.Index, a.Index)
	})
	return out
}

func scoreCompleteness(g RegionGroup, fields []string, w Weights) CompletenessRecord {
	total := len(g.Observations)
	r := CompletenessRecord{Key: g.Key, NSamples: total}
	byField := make(map[string]float64, len(fields))

	sum := 0.0
	for _, f := range fields {
		filled := 0
		for _, o := range g.Observations {
			if _, ok := o.Raw.Get(f); ok {
				filled++
			}
		}
		pct := float64(filled) / float64(total) * 100
		r.Fields = append(r.Fields, FieldCompleteness{Field: f, Percent: pct})
		byField[f] = pct
		sum += pct
	}
	if len(fields) > 0 {
		r.Average = sum / float64(len(fields))
	}

	critical := 0.0
	for _, f := range CriticalFields {
		critical += byField[f]
	}
	r.Critical = critical / float64(len(CriticalFields))

	r.Index = round(w.Completeness.Critical*r.Critical+w.Completeness.Average*r.Average, 2)
	r.Average = round(r.Average, 2)
	r.Critical = round(r.Critical, 2)
	return r
}

// Value converts the record to its document form.
func (r CompletenessRecord) Value() document.Value {
	fields := make([]document.Field, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = document.F(f.Field, document.Float(f.Percent))
	}
	return document.Object(
		document.F("ocean", document.Label(r.Key.Ocean)),
		document.F("region", document.Label(r.Key.Region)),
		document.F("nSamples", document.Int(r.NSamples)),
		document.F("completenessIndex", document.Float(r.Index)),
		document.F("avgCompleteness", document.Float(r.Average)),
		document.F("criticalCompleteness", document.Float(r.Critical)),
		document.F("varCompleteness", document.Object(fields...)),
	)
}

// CompletenessByKey indexes records by region key.
func CompletenessByKey(records []CompletenessRecord) map[domain.RegionKey]CompletenessRecord {
	out := make(map[domain.RegionKey]CompletenessRecord, len(records))
	for _, r := range records {
		out[r.Key] = r
	}
	return out
}
