package viz

import (
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
	"github.com/couchcryptid/microplastics-etl/internal/indices"
)

// RegionProfile describes one (ocean, region, country) group, joined with the
// region's ICR and completeness scores when they exist.
type RegionProfile struct {
	Key     domain.RegionKey
	Country string
	Summary indices.Summary
	MinLat  float64
	MaxLat  float64
	MeanLat float64
	MinLon  float64
	MaxLon  float64
	MeanLon float64

	ICR          *float64
	Completeness *indices.CompletenessRecord
}

type profileKey struct {
	region  domain.RegionKey
	country string
}

// ByRegion builds the regional profile table, ordered by ocean, region and
// country with missing values last.
func ByRegion(ds domain.Dataset, r indices.Results) []RegionProfile {
	groups := make(map[profileKey][]domain.Observation)
	var keys []profileKey
	for _, o := range ds.Observations {
		k := profileKey{o.Key(), o.Country}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], o)
	}
	slices.SortFunc(keys, func(a, b profileKey) int {
		if c := domain.CompareRegionKeys(a.region, b.region); c != 0 {
			return c
		}
		return domain.CompareLabels(a.country, b.country)
	})

	icr := indices.ICRByKey(r.ICR)
	comp := indices.CompletenessByKey(r.Completeness)
	out := make([]RegionProfile, len(keys))
	for i, k := range keys {
		obs := groups[k]
		lats := make([]float64, len(obs))
		lons := make([]float64, len(obs))
		concs := make([]float64, len(obs))
		for j, o := range obs {
			lats[j], lons[j], concs[j] = o.Lat, o.Lon, o.Concentration
		}
		p := RegionProfile{Key: k.region, Country: k.country, Summary: indices.Describe(concs)}
		p.MinLat, p.MaxLat, p.MeanLat = spread(lats)
		p.MinLon, p.MaxLon, p.MeanLon = spread(lons)
		if v, ok := icr[k.region]; ok {
			p.ICR = &v.ICR
		}
		if v, ok := comp[k.region]; ok {
			p.Completeness = &v
		}
		out[i] = p
	}
	return out
}

func spread(values []float64) (lo, hi, mean float64) {
	lo, _ = stats.Min(values)
	hi, _ = stats.Max(values)
	mean, _ = stats.Mean(values)
	return lo, hi, mean
}

// Value converts the profile to its document form.
func (p RegionProfile) Value() document.Value {
	index, avg, critical := document.Null(), document.Null(), document.Null()
	if c := p.Completeness; c != nil {
		index = document.Float(c.Index)
		avg = document.Float(c.Average)
		critical = document.Float(c.Critical)
	}
	return document.Object(
		document.F("ocean", document.Label(p.Key.Ocean)),
		document.F("region", document.Label(p.Key.Region)),
		document.F("country", document.Label(p.Country)),
		document.F("nSamples", document.Int(p.Summary.N)),
		document.F("meanConcentration", document.Float(p.Summary.Mean)),
		document.F("medianConcentration", document.Float(p.Summary.Median)),
		document.F("sdConcentration", document.OptFloat(p.Summary.SD)),
		document.F("minLat", document.Float(p.MinLat)),
		document.F("maxLat", document.Float(p.MaxLat)),
		document.F("meanLat", document.Float(p.MeanLat)),
		document.F("minLon", document.Float(p.MinLon)),
		document.F("maxLon", document.Float(p.MaxLon)),
		document.F("meanLon", document.Float(p.MeanLon)),
		document.F("ICR", document.OptFloat(p.ICR)),
		document.F("completenessIndex", index),
		document.F("avgCompleteness", avg),
		document.F("criticalCompleteness", critical),
	)
}
