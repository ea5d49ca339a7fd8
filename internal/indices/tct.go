package indices

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// YearRecord is one step of the global temporal change sequence.
type YearRecord struct {
	Year    int
	Summary Summary
	// PrevMean is the mean of the preceding year present in the data.
	PrevMean *float64
	// TCT is the percent change against PrevMean, nil for the first year.
	TCT *float64
}

// RegionYearRecord is one step of a per-region temporal change sequence.
type RegionYearRecord struct {
	Year              int
	Key               domain.RegionKey
	MeanConcentration float64
	NSamples          int
	PrevMean          *float64
	TCT               *float64
}

// ComputeTCT groups dated observations by year and chains each year to the
// previous year present. Gaps are not filled: the change may span several
// calendar years.
func ComputeTCT(ds domain.Dataset) []YearRecord {
	byYear := groupByYear(ds.Observations)
	years := sortedYears(byYear)

	out := make([]YearRecord, len(years))
	for i, y := range years {
		out[i] = YearRecord{Year: y, Summary: Describe(byYear[y])}
		if i > 0 {
			prev := out[i-1].Summary.Mean
			out[i].PrevMean = &prev
			out[i].TCT = percentChange(prev, out[i].Summary.Mean)
		}
	}
	return out
}

// ComputeTCTByRegion applies the same chaining independently inside every
// (ocean, region) partition. Rows are ordered by region key, then year.
func ComputeTCTByRegion(ds domain.Dataset) []RegionYearRecord {
	var out []RegionYearRecord
	for _, g := range GroupByRegion(ds.Observations) {
		byYear := groupByYear(g.Observations)
		var prev *float64
		for _, y := range sortedYears(byYear) {
			s := Describe(byYear[y])
			r := RegionYearRecord{
				Year:              y,
				Key:               g.Key,
				MeanConcentration: s.Mean,
				NSamples:          s.N,
				PrevMean:          prev,
			}
			if prev != nil {
				r.TCT = percentChange(*prev, s.Mean)
			}
			mean := s.Mean
			prev = &mean
			out = append(out, r)
		}
	}
	return out
}

func groupByYear(obs []domain.Observation) map[int][]float64 {
	out := make(map[int][]float64)
	for _, o := range obs {
		if o.Year == nil {
			continue
		}
		out[*o.Year] = append(out[*o.Year], o.Concentration)
	}
	return out
}

func sortedYears(m map[int][]float64) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	slices.SortFunc(years, cmp.Compare[int])
	return years
}

func percentChange(prev, cur float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := round((cur-prev)/prev*100, 2)
	return &v
}

// Value converts the record to its document form.
func (r YearRecord) Value() document.Value {
	return document.Object(
		document.F("year", document.Int(r.Year)),
		document.F("meanConcentration", document.Float(r.Summary.Mean)),
		document.F("medianConcentration", document.Float(r.Summary.Median)),
		document.F("sdConcentration", document.OptFloat(r.Summary.SD)),
		document.F("nSamples", document.Int(r.Summary.N)),
		document.F("prev_year_conc", document.OptFloat(r.PrevMean)),
		document.F("TCT", document.OptFloat(r.TCT)),
	)
}

// Value converts the record to its document form.
func (r RegionYearRecord) Value() document.Value {
	return document.Object(
		document.F("year", document.Int(r.Year)),
		document.F("ocean", document.Label(r.Key.Ocean)),
		document.F("region", document.Label(r.Key.Region)),
		document.F("meanConcentration", document.Float(r.MeanConcentration)),
		document.F("nSamples", document.Int(r.NSamples)),
		document.F("prev_year_conc", document.OptFloat(r.PrevMean)),
		document.F("TCT", document.OptFloat(r.TCT)),
	)
}
