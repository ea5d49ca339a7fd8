package indices

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// IGRMRecord is the composite risk index of one region. The joined inputs are
// nil when the region is absent from the source table.
type IGRMRecord struct {
	Key               domain.RegionKey
	NSamples          int
	MeanConcentration float64
	MeanLat           float64
	MeanLon           float64
	ICR               *float64
	Completeness      *float64
	Diversity         *float64
	IGRM              float64
}

// ComputeIGRM left-joins ICR, completeness and diversity onto every region of
// the dataset. Completeness and diversity measure quality, so they enter the
// blend inverted as risk. A missing input takes the neutral component value.
// The result is sorted by IGRM, highest first.
func ComputeIGRM(ds domain.Dataset, icr []ICRRecord, completeness []CompletenessRecord, diversity []DiversityRecord, w Weights) []IGRMRecord {
	icrs := ICRByKey(icr)
	comps := CompletenessByKey(completeness)
	divs := DiversityByKey(diversity)

	var out []IGRMRecord
	for _, g := range GroupByRegion(ds.Observations) {
		s := Describe(g.Concentrations())
		lat, lon := g.MeanPosition()
		r := IGRMRecord{
			Key:               g.Key,
			NSamples:          s.N,
			MeanConcentration: s.Mean,
			MeanLat:           lat,
			MeanLon:           lon,
		}
		if v, ok := icrs[g.Key]; ok {
			r.ICR = &v.ICR
		}
		if v, ok := comps[g.Key]; ok {
			r.Completeness = &v.Index
		}
		if v, ok := divs[g.Key]; ok {
			r.Diversity = &v.Normalized
		}

		contamination := w.Neutral
		if r.ICR != nil {
			contamination = *r.ICR
		}
		completenessRisk := w.Neutral
		if r.Completeness != nil {
			completenessRisk = 1 - *r.Completeness/100
		}
		diversityRisk := w.Neutral
		if r.Diversity != nil {
			diversityRisk = 1 - *r.Diversity
		}
		r.IGRM = w.IGRM.Contamination*contamination +
			w.IGRM.Completeness*completenessRisk +
			w.IGRM.Diversity*diversityRisk
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b IGRMRecord) int {
		return cmp.Compare(b.IGRM, a.IGRM)
	})
	return out
}

// Value converts the record to its document form.
func (r IGRMRecord) Value() document.Value {
	return document.Object(
		document.F("ocean", document.Label(r.Key.Ocean)),
		document.F("region", document.Label(r.Key.Region)),
		document.F("nSamples", document.Int(r.NSamples)),
		document.F("meanConcentration", document.Float(r.MeanConcentration)),
		document.F("meanLat", document.Float(r.MeanLat)),
		document.F("meanLon", document.Float(r.MeanLon)),
		document.F("ICR", document.OptFloat(r.ICR)),
		document.F("completenessIndex", document.OptFloat(r.Completeness)),
		document.F("normalizedDiversity", document.OptFloat(r.Diversity)),
		document.F("IGRM", document.Float(r.IGRM)),
	)
}
