package viz

import (
	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// ScatterPoint is one sampled observation with a positive depth.
type ScatterPoint struct {
	Concentration float64
	Depth         float64
	Lat           float64
	Lon           float64
	Ocean         string
	Region        string
	Year          *int
	Method        string
}

// Scatter samples up to the scatter cap of observations with a positive depth.
func (b *Builder) Scatter(ds domain.Dataset) []ScatterPoint {
	var eligible []domain.Observation
	for _, o := range ds.Observations {
		if o.Depth != nil && *o.Depth > 0 {
			eligible = append(eligible, o)
		}
	}
	picked := b.sample(eligible, b.scatterCap)
	out := make([]ScatterPoint, len(picked))
	for i, o := range picked {
		out[i] = ScatterPoint{
			Concentration: o.Concentration,
			Depth:         *o.Depth,
			Lat:           o.Lat,
			Lon:           o.Lon,
			Ocean:         o.Ocean,
			Region:        o.Region,
			Year:          o.Year,
			Method:        o.Method,
		}
	}
	return out
}

// Value converts the point to its document form.
func (p ScatterPoint) Value() document.Value {
	return document.Object(
		document.F("concentration", document.Float(p.Concentration)),
		document.F("depth", document.Float(p.Depth)),
		document.F("lat", document.Float(p.Lat)),
		document.F("lon", document.Float(p.Lon)),
		document.F("ocean", document.Label(p.Ocean)),
		document.F("region", document.Label(p.Region)),
		document.F("Year", document.OptInt(p.Year)),
		document.F("method", document.Label(p.Method)),
	)
}

// ParallelRow is one sampled observation with its axes scaled to [0, 1].
type ParallelRow struct {
	Concentration     float64
	Depth             *float64
	Year              *int
	Ocean             string
	Method            string
	MarineSetting     string
	Lat               float64
	Lon               float64
	Region            string
	ConcentrationNorm float64
	// DepthNorm is scaled against the depth range of the whole dataset.
	DepthNorm *float64
	YearNorm  *float64
}

// Parallel samples up to the parallel cap of observations. Concentration and
// year are min-max scaled within the sample, depth within the whole dataset.
// A scale without spread yields 0 for concentration and year, and nil for
// depth.
func (b *Builder) Parallel(ds domain.Dataset) []ParallelRow {
	picked := b.sample(ds.Observations, b.parallelCap)
	if len(picked) == 0 {
		return nil
	}

	depthLo, depthHi, hasDepth := depthRange(ds.Observations)
	concLo, concHi := picked[0].Concentration, picked[0].Concentration
	var yearLo, yearHi *int
	for _, o := range picked {
		concLo, concHi = min(concLo, o.Concentration), max(concHi, o.Concentration)
		if o.Year != nil {
			if yearLo == nil || *o.Year < *yearLo {
				yearLo = o.Year
			}
			if yearHi == nil || *o.Year > *yearHi {
				yearHi = o.Year
			}
		}
	}

	out := make([]ParallelRow, len(picked))
	for i, o := range picked {
		r := ParallelRow{
			Concentration: o.Concentration,
			Depth:         o.Depth,
			Year:          o.Year,
			Ocean:         o.Ocean,
			Method:        o.Method,
			MarineSetting: o.MarineSetting,
			Lat:           o.Lat,
			Lon:           o.Lon,
			Region:        o.Region,
		}
		if concHi > concLo {
			r.ConcentrationNorm = (o.Concentration - concLo) / (concHi - concLo)
		}
		if o.Depth != nil && hasDepth && depthHi > depthLo {
			v := (*o.Depth - depthLo) / (depthHi - depthLo)
			r.DepthNorm = &v
		}
		if o.Year != nil {
			v := 0.0
			if *yearHi > *yearLo {
				v = float64(*o.Year-*yearLo) / float64(*yearHi-*yearLo)
			}
			r.YearNorm = &v
		}
		out[i] = r
	}
	return out
}

func depthRange(obs []domain.Observation) (lo, hi float64, ok bool) {
	for _, o := range obs {
		if o.Depth == nil {
			continue
		}
		if !ok {
			lo, hi, ok = *o.Depth, *o.Depth, true
			continue
		}
		lo, hi = min(lo, *o.Depth), max(hi, *o.Depth)
	}
	return lo, hi, ok
}

// Value converts the row to its document form.
func (r ParallelRow) Value() document.Value {
	return document.Object(
		document.F("concentration", document.Float(r.Concentration)),
		document.F("depth", document.OptFloat(r.Depth)),
		document.F("Year", document.OptInt(r.Year)),
		document.F("ocean", document.Label(r.Ocean)),
		document.F("method", document.Label(r.Method)),
		document.F("marineSetting", document.Label(r.MarineSetting)),
		document.F("lat", document.Float(r.Lat)),
		document.F("lon", document.Float(r.Lon)),
		document.F("region", document.Label(r.Region)),
		document.F("concentration_norm", document.Float(r.ConcentrationNorm)),
		document.F("depth_norm", document.OptFloat(r.DepthNorm)),
		document.F("year_norm", document.OptFloat(r.YearNorm)),
	)
}
