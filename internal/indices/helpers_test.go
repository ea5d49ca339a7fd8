package indices

import (
	"strconv"
	"time"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

const (
	testAtlantic = "Atlantic"
	testPacific  = "Pacific"
	testNorth    = "North"
	testSouth    = "South"
	testManta    = "Manta net"
	testNeuston  = "Neuston net"
)

// sample builds an observation with a raw record consistent with its fields.
func sample(ocean, region string, conc float64) domain.Observation {
	return domain.Observation{
		Ocean:         ocean,
		Region:        region,
		Concentration: conc,
		Lat:           10,
		Lon:           20,
		Raw: domain.RawRecord{
			domain.ColOcean:       ocean,
			domain.ColRegion:      region,
			domain.ColMeasurement: strconv.FormatFloat(conc, 'f', -1, 64),
			domain.ColLatitude:    "10",
			domain.ColLongitude:   "20",
		},
	}
}

func withYear(o domain.Observation, year int) domain.Observation {
	d := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	o.Date = &d
	o.Year = &year
	o.RawDate = d.Format("1/2/2006")
	o.Raw[domain.ColDate] = o.RawDate
	return o
}

func withDepth(o domain.Observation, depth float64) domain.Observation {
	o.Depth = &depth
	return o
}

func withMethod(o domain.Observation, method string) domain.Observation {
	o.Method = method
	o.Raw[domain.ColSamplingMethod] = method
	return o
}

func dataset(obs ...domain.Observation) domain.Dataset {
	return domain.Dataset{
		Columns: []string{
			domain.ColOcean, domain.ColRegion, domain.ColMeasurement,
			domain.ColLatitude, domain.ColLongitude, domain.ColDate, domain.ColSamplingMethod,
		},
		Observations: obs,
	}
}

func ptr[T any](v T) *T { return &v }
