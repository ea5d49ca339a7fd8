package indices

import (
	"cmp"
	"math"
	"slices"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// MethodCount is the number of samples taken with one sampling method.
type MethodCount struct {
	Method string
	Count  int
}

// DiversityRecord is the sampling-method diversity of one region.
type DiversityRecord struct {
	Key          domain.RegionKey
	NSamples     int
	Distribution []MethodCount
	Shannon      float64
	Normalized   float64
}

// ComputeDiversity computes the Shannon entropy of the sampling-method mix in
// each region, normalized by ln(k) for k distinct methods. A single-method
// region scores 0. Observations without a method are ignored. The result is
// sorted by normalized diversity, highest first.
func ComputeDiversity(ds domain.Dataset) []DiversityRecord {
	withMethod := make([]domain.Observation, 0, len(ds.Observations))
	for _, o := range ds.Observations {
		if o.Method != "" {
			withMethod = append(withMethod, o)
		}
	}

	var out []DiversityRecord
	for _, g := range GroupByRegion(withMethod) {
		out = append(out, scoreDiversity(g))
	}
	slices.SortStableFunc(out, func(a, b DiversityRecord) int {
		return cmp.Compare(b.Normalized, a.Normalized)
	})
	return out
}

func scoreDiversity(g RegionGroup) DiversityRecord {
	counts := make(map[string]int)
	var order []string
	for _, o := range g.Observations {
		if counts[o.Method] == 0 {
			order = append(order, o.Method)
		}
		counts[o.Method]++
	}
	dist := make([]MethodCount, len(order))
	for i, m := range order {
		dist[i] = MethodCount{Method: m, Count: counts[m]}
	}
	slices.SortStableFunc(dist, func(a, b MethodCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	total := float64(len(g.Observations))
	h := 0.0
	for _, mc := range dist {
		p := float64(mc.Count) / total
		h -= p * math.Log(p)
	}
	maxH := 1.0
	if len(dist) > 1 {
		maxH = math.Log(float64(len(dist)))
	}

	return DiversityRecord{
		Key:          g.Key,
		NSamples:     len(g.Observations),
		Distribution: dist,
		Shannon:      round(h, 3),
		Normalized:   round(h/maxH, 3),
	}
}

// NMethods is the number of distinct methods in the region.
func (r DiversityRecord) NMethods() int { return len(r.Distribution) }

// Value converts the record to its document form.
func (r DiversityRecord) Value() document.Value {
	dist := make([]document.Field, len(r.Distribution))
	for i, mc := range r.Distribution {
		dist[i] = document.F(mc.Method, document.Int(mc.Count))
	}
	return document.Object(
		document.F("ocean", document.Label(r.Key.Ocean)),
		document.F("region", document.Label(r.Key.Region)),
		document.F("nSamples", document.Int(r.NSamples)),
		document.F("nMethods", document.Int(r.NMethods())),
		document.F("shannonIndex", document.Float(r.Shannon)),
		document.F("normalizedDiversity", document.Float(r.Normalized)),
		document.F("methodDistribution", document.Object(dist...)),
	)
}

// DiversityByKey indexes records by region key.
func DiversityByKey(records []DiversityRecord) map[domain.RegionKey]DiversityRecord {
	out := make(map[domain.RegionKey]DiversityRecord, len(records))
	for _, r := range records {
		out[r.Key] = r
	}
	return out
}
