package indices

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// Summary describes a sample of concentrations.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	// SD is the sample standard deviation, nil when N < 2.
	SD  *float64
	Min float64
	Max float64
}

// Describe summarizes values. It returns the zero Summary for an empty slice.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	data := stats.Float64Data(values)
	s := Summary{N: len(values)}
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	if len(values) > 1 {
		if sd, err := stats.StandardDeviationSample(data); err == nil && !math.IsNaN(sd) {
			s.SD = &sd
		}
	}
	return s
}

// SDOrZero returns the standard deviation, or 0 when it is undefined.
func (s Summary) SDOrZero() float64 {
	if s.SD == nil {
		return 0
	}
	return *s.SD
}

// RegionGroup is the set of observations sharing an (ocean, region) key.
type RegionGroup struct {
	Key          domain.RegionKey
	Observations []domain.Observation
}

// Concentrations returns the group's concentrations in input order.
func (g RegionGroup) Concentrations() []float64 {
	return concentrations(g.Observations)
}

// Country returns the first non-missing country of the group.
func (g RegionGroup) Country() string {
	for _, o := range g.Observations {
		if o.Country != "" {
			return o.Country
		}
	}
	return ""
}

// MeanPosition returns the mean latitude and longitude.
func (g RegionGroup) MeanPosition() (lat, lon float64) {
	lats := make([]float64, len(g.Observations))
	lons := make([]float64, len(g.Observations))
	for i, o := range g.Observations {
		lats[i], lons[i] = o.Lat, o.Lon
	}
	lat, _ = stats.Mean(lats)
	lon, _ = stats.Mean(lons)
	return lat, lon
}

// GroupByRegion partitions observations by (ocean, region), keeping input
// order inside each group. Groups are ordered by key, missing components last.
func GroupByRegion(obs []domain.Observation) []RegionGroup {
	index := make(map[domain.RegionKey]int)
	var groups []RegionGroup
	for _, o := range obs {
		k := o.Key()
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, RegionGroup{Key: k})
		}
		groups[i].Observations = append(groups[i].Observations, o)
	}
	slices.SortFunc(groups, func(a, b RegionGroup) int {
		return domain.CompareRegionKeys(a.Key, b.Key)
	})
	return groups
}

func concentrations(obs []domain.Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Concentration
	}
	return out
}

// minMaxNorm scales v into [0, 1) with the (max - min + 1) denominator, which
// stays defined when every value is equal.
func minMaxNorm(v, lo, hi float64) float64 {
	return (v - lo) / (hi - lo + 1)
}

func bounds(values []float64) (lo, hi float64) {
	lo, _ = stats.Min(values)
	hi, _ = stats.Max(values)
	return lo, hi
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
