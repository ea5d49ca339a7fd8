package viz

import (
	"cmp"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// MethodDistribution lists the concentrations sampled with one method.
type MethodDistribution struct {
	Method         string
	Concentrations []float64
}

// MethodDistributions groups concentrations by sampling method, ordered by
// method name. Observations without a method are skipped.
func MethodDistributions(ds domain.Dataset) []MethodDistribution {
	byMethod := make(map[string][]float64)
	for _, o := range ds.Observations {
		if o.Method == "" {
			continue
		}
		byMethod[o.Method] = append(byMethod[o.Method], o.Concentration)
	}
	out := make([]MethodDistribution, 0, len(byMethod))
	for m, concs := range byMethod {
		out = append(out, MethodDistribution{Method: m, Concentrations: concs})
	}
	slices.SortFunc(out, func(a, b MethodDistribution) int { return cmp.Compare(a.Method, b.Method) })
	return out
}

// Value converts the distribution to its document form.
func (d MethodDistribution) Value() document.Value {
	return document.Object(
		document.F("method", document.String(d.Method)),
		document.F("concentrations", document.Floats(d.Concentrations)),
	)
}

// YearDistribution lists the concentrations observed in one year.
type YearDistribution struct {
	Year           int
	Concentrations []float64
}

// Violin groups concentrations by year, ascending. Undated observations are
// skipped.
func Violin(ds domain.Dataset) []YearDistribution {
	byYear := make(map[int][]float64)
	for _, o := range ds.Observations {
		if o.Year == nil {
			continue
		}
		byYear[*o.Year] = append(byYear[*o.Year], o.Concentration)
	}
	out := make([]YearDistribution, 0, len(byYear))
	for y, concs := range byYear {
		out = append(out, YearDistribution{Year: y, Concentrations: concs})
	}
	slices.SortFunc(out, func(a, b YearDistribution) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// Value converts the distribution to its document form.
func (d YearDistribution) Value() document.Value {
	return document.Object(
		document.F("year", document.Int(d.Year)),
		document.F("concentrations", document.Floats(d.Concentrations)),
	)
}

type settingKey struct {
	method  string
	setting string
}

func compareSettingKeys(a, b settingKey) int {
	if c := cmp.Compare(a.method, b.method); c != 0 {
		return c
	}
	return cmp.Compare(a.setting, b.setting)
}

// TreemapCell aggregates one (method, marine setting) pair.
type TreemapCell struct {
	Method            string
	MarineSetting     string
	NSamples          int
	MeanConcentration float64
}

// Treemap aggregates observations with both a method and a marine setting,
// largest cells first.
func Treemap(ds domain.Dataset) []TreemapCell {
	groups := make(map[settingKey][]float64)
	for _, o := range ds.Observations {
		if o.Method == "" || o.MarineSetting == "" {
			continue
		}
		k := settingKey{o.Method, o.MarineSetting}
		groups[k] = append(groups[k], o.Concentration)
	}
	keys := make([]settingKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSettingKeys)

	out := make([]TreemapCell, len(keys))
	for i, k := range keys {
		mean, _ := stats.Mean(groups[k])
		out[i] = TreemapCell{
			Method:            k.method,
			MarineSetting:     k.setting,
			NSamples:          len(groups[k]),
			MeanConcentration: mean,
		}
	}
	slices.SortStableFunc(out, func(a, b TreemapCell) int { return cmp.Compare(b.NSamples, a.NSamples) })
	return out
}

// Value converts the cell to its document form.
func (c TreemapCell) Value() document.Value {
	return document.Object(
		document.F("method", document.String(c.Method)),
		document.F("marineSetting", document.String(c.MarineSetting)),
		document.F("nSamples", document.Int(c.NSamples)),
		document.F("meanConcentration", document.Float(c.MeanConcentration)),
	)
}

// Flow counts observations along method, marine setting and concentration
// band.
type Flow struct {
	Method        string
	MarineSetting string
	Band          string
	Count         int
}

// Sankey counts each observed (method, marine setting, band) combination,
// largest first. Combinations with no observations are not emitted.
func Sankey(ds domain.Dataset) []Flow {
	type flowKey struct {
		settingKey
		band int
	}
	counts := make(map[flowKey]int)
	for _, o := range ds.Observations {
		if o.Method == "" || o.MarineSetting == "" {
			continue
		}
		band, ok := domain.BandIndex(o.Concentration)
		if !ok {
			continue
		}
		counts[flowKey{settingKey{o.Method, o.MarineSetting}, band}]++
	}

	keys := make([]flowKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b flowKey) int {
		if c := compareSettingKeys(a.settingKey, b.settingKey); c != 0 {
			return c
		}
		return cmp.Compare(a.band, b.band)
	})

	out := make([]Flow, len(keys))
	for i, k := range keys {
		out[i] = Flow{
			Method:        k.method,
			MarineSetting: k.setting,
			Band:          domain.ConcentrationBands[k.band].Label,
			Count:         counts[k],
		}
	}
	slices.SortStableFunc(out, func(a, b Flow) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// Value converts the flow to its document form.
func (f Flow) Value() document.Value {
	return document.Object(
		document.F("method", document.String(f.Method)),
		document.F("marineSetting", document.String(f.MarineSetting)),
		document.F("concentration_range", document.String(f.Band)),
		document.F("count", document.Int(f.Count)),
	)
}
