package indices

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// ICRRecord is the regional contamination index of one region.
type ICRRecord struct {
	Key               domain.RegionKey
	NSamples          int
	MeanConcentration float64
	// SDConcentration is 0 for a single-sample region.
	SDConcentration float64
	MeanLat         float64
	MeanLon         float64
	Country         string
	CV              float64
	NSamplesNorm    float64
	MeanNorm        float64
	CVNorm          float64
	ICR             float64
}

// ComputeICR scores every region by its normalized mean concentration,
// variability and sample count. The result is sorted by ICR, highest first.
func ComputeICR(ds domain.Dataset, w Weights) []ICRRecord {
	groups := GroupByRegion(ds.Observations)
	if len(groups) == 0 {
		return nil
	}

	records := make([]ICRRecord, len(groups))
	ns := make([]float64, len(groups))
	means := make([]float64, len(groups))
	cvs := make([]float64, len(groups))
	for i, g := range groups {
		s := Describe(g.Concentrations())
		lat, lon := g.MeanPosition()
		r := ICRRecord{
			Key:               g.Key,
			NSamples:          s.N,
			MeanConcentration: s.Mean,
			SDConcentration:   s.SDOrZero(),
			MeanLat:           lat,
			MeanLon:           lon,
			Country:           g.Country(),
		}
		if r.MeanConcentration > 0 {
			r.CV = r.SDConcentration / r.MeanConcentration
		}
		records[i] = r
		ns[i], means[i], cvs[i] = float64(r.NSamples), r.MeanConcentration, r.CV
	}

	nLo, nHi := bounds(ns)
	meanLo, meanHi := bounds(means)
	cvLo, cvHi := bounds(cvs)
	for i := range records {
		r := &records[i]
		r.NSamplesNorm = minMaxNorm(ns[i], nLo, nHi)
		r.MeanNorm = minMaxNorm(means[i], meanLo, meanHi)
		if cvHi > cvLo {
			r.CVNorm = minMaxNorm(cvs[i], cvLo, cvHi)
		} else {
			r.CVNorm = w.FlatCV
		}
		r.ICR = w.ICR.Mean*r.MeanNorm + w.ICR.CV*r.CVNorm + w.ICR.Count*r.NSamplesNorm
	}

	slices.SortStableFunc(records, func(a, b ICRRecord) int {
		return cmp.Compare(b.ICR, a.ICR)
	})
	return records
}

// Value converts the record to its document form.
func (r ICRRecord) Value() document.Value {
	return document.Object(
		document.F("ocean", document.Label(r.Key.Ocean)),
		document.F("region", document.Label(r.Key.Region)),
		document.F("nSamples", document.Int(r.NSamples)),
		document.F("meanConcentration", document.Float(r.MeanConcentration)),
		document.F("sdConcentration", document.Float(r.SDConcentration)),
		document.F("meanLat", document.Float(r.MeanLat)),
		document.F("meanLon", document.Float(r.MeanLon)),
		document.F("country", document.Label(r.Country)),
		document.F("cvConcentration", document.Float(r.CV)),
		document.F("nSamples_norm", document.Float(r.NSamplesNorm)),
		document.F("meanConc_norm", document.Float(r.MeanNorm)),
		document.F("cv_norm", document.Float(r.CVNorm)),
		document.F("ICR", document.Float(r.ICR)),
	)
}

// ICRByKey indexes records by region key.
func ICRByKey(records []ICRRecord) map[domain.RegionKey]ICRRecord {
	out := make(map[domain.RegionKey]ICRRecord, len(records))
	for _, r := range records {
		out[r.Key] = r
	}
	return out
}
