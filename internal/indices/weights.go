package indices

import (
	"errors"
	"fmt"
	"math"
)

// Policy constants. Each weighted blend sums to 1.
const (
	DefaultICRMeanWeight  = 0.4
	DefaultICRCVWeight    = 0.3
	DefaultICRCountWeight = 0.3

	DefaultCriticalWeight = 0.6
	DefaultAverageWeight  = 0.4

	DefaultIGRMContaminationWeight = 0.4
	DefaultIGRMCompletenessWeight  = 0.3
	DefaultIGRMDiversityWeight     = 0.3

	// NeutralComponent replaces an IGRM input missing for a region.
	NeutralComponent = 0.5
	// FlatCVNorm is assigned to every region when cv has no spread.
	FlatCVNorm = 0.5

	MinCorrelationSamples = 10
	StrongCorrelation     = 0.7
	ModerateCorrelation   = 0.4
)

const weightTolerance = 1e-9

// ICRWeights blends the normalized mean, cv and sample count.
type ICRWeights struct {
	Mean  float64 `yaml:"mean"`
	CV    float64 `yaml:"cv"`
	Count float64 `yaml:"count"`
}

// CompletenessWeights blends critical and average field completeness.
type CompletenessWeights struct {
	Critical float64 `yaml:"critical"`
	Average  float64 `yaml:"average"`
}

// IGRMWeights blends contamination with inverted completeness and diversity.
type IGRMWeights struct {
	Contamination float64 `yaml:"contamination"`
	Completeness  float64 `yaml:"completeness"`
	Diversity     float64 `yaml:"diversity"`
}

// Weights gathers every policy constant an engine reads.
type Weights struct {
	ICR          ICRWeights          `yaml:"icr"`
	Completeness CompletenessWeights `yaml:"completeness"`
	IGRM         IGRMWeights         `yaml:"igrm"`
	Neutral      float64             `yaml:"neutral"`
	FlatCV       float64             `yaml:"flat_cv"`
}

// DefaultWeights returns the production policy.
func DefaultWeights() Weights {
	return Weights{
		ICR: ICRWeights{
			Mean:  DefaultICRMeanWeight,
			CV:    DefaultICRCVWeight,
			Count: DefaultICRCountWeight,
		},
		Completeness: CompletenessWeights{
			Critical: DefaultCriticalWeight,
			Average:  DefaultAverageWeight,
		},
		IGRM: IGRMWeights{
			Contamination: DefaultIGRMContaminationWeight,
			Completeness:  DefaultIGRMCompletenessWeight,
			Diversity:     DefaultIGRMDiversityWeight,
		},
		Neutral: NeutralComponent,
		FlatCV:  FlatCVNorm,
	}
}

// Validate checks that every blend sums to 1 and every weight lies in [0, 1].
func (w Weights) Validate() error {
	var errs []error
	check := func(name string, parts ...float64) {
		sum := 0.0
		for _, p := range parts {
			if p < 0 || p > 1 {
				errs = append(errs, fmt.Errorf("%s weight %v outside [0, 1]", name, p))
			}
			sum += p
		}
		if len(parts) > 1 && math.Abs(sum-1) > weightTolerance {
			errs = append(errs, fmt.Errorf("%s weights sum to %v, want 1", name, sum))
		}
	}
	check("icr", w.ICR.Mean, w.ICR.CV, w.ICR.Count)
	check("completeness", w.Completeness.Critical, w.Completeness.Average)
	check("igrm", w.IGRM.Contamination, w.IGRM.Completeness, w.IGRM.Diversity)
	check("neutral", w.Neutral)
	check("flat_cv", w.FlatCV)
	return errors.Join(errs...)
}
