package indices

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// Correlation strength and direction labels.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"

	DirectionPositive = "positive"
	DirectionNegative = "negative"
)

// DepthCorrelation is the Pearson correlation between water depth and
// concentration. Coefficient, Direction and Strength are unset when there are
// fewer than MinCorrelationSamples pairs or either variable is constant.
type DepthCorrelation struct {
	NSamples    int
	Coefficient *float64
	Direction   string
	Strength    string
}

// ComputeDepthCorrelation correlates depth with concentration over the
// observations with a positive depth.
func ComputeDepthCorrelation(ds domain.Dataset) DepthCorrelation {
	var depths, concs []float64
	for _, o := range ds.Observations {
		if o.Depth == nil || *o.Depth <= 0 || o.Concentration <= 0 {
			continue
		}
		depths = append(depths, *o.Depth)
		concs = append(concs, o.Concentration)
	}

	out := DepthCorrelation{NSamples: len(depths)}
	if len(depths) < MinCorrelationSamples || constant(depths) || constant(concs) {
		return out
	}
	r, err := stats.Pearson(depths, concs)
	if err != nil || math.IsNaN(r) {
		return out
	}

	rounded := round(r, 3)
	out.Coefficient = &rounded
	out.Direction = DirectionNegative
	if r > 0 {
		out.Direction = DirectionPositive
	}
	switch abs := math.Abs(r); {
	case abs >= StrongCorrelation:
		out.Strength = StrengthStrong
	case abs >= ModerateCorrelation:
		out.Strength = StrengthModerate
	default:
		out.Strength = StrengthWeak
	}
	return out
}

func constant(values []float64) bool {
	lo, hi := bounds(values)
	return lo == hi
}

// Value converts the result to its document form.
func (c DepthCorrelation) Value() document.Value {
	return document.Object(
		document.F("correlation", document.OptFloat(c.Coefficient)),
		document.F("nSamples", document.Int(c.NSamples)),
		document.F("direction", document.Label(c.Direction)),
		document.F("strength", document.Label(c.Strength)),
	)
}
