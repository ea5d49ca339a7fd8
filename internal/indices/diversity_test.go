package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiversity(t *testing.T) {
	tests := []struct {
		name       string
		methods    []string
		shannon    float64
		normalized float64
	}{
		{"single method", []string{testManta, testManta, testManta}, 0, 0},
		{"even two-way split", []string{testManta, testNeuston}, round(math.Ln2, 3), 1},
		{"uneven split", []string{testManta, testManta, testManta, testNeuston}, 0.562, 0.811},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset()
			for i, m := range tt.methods {
				ds.Observations = append(ds.Observations, withMethod(sample(testAtlantic, testNorth, float64(i+1)), m))
			}
			got := ComputeDiversity(ds)
			require.Len(t, got, 1)
			assert.Equal(t, tt.shannon, got[0].Shannon)
			assert.Equal(t, tt.normalized, got[0].Normalized)
			assert.Equal(t, len(tt.methods), got[0].NSamples)
		})
	}
}

func TestComputeDiversityIgnoresMissingMethod(t *testing.T) {
	ds := dataset(
		withMethod(sample(testAtlantic, testNorth, 1), testManta),
		sample(testAtlantic, testNorth, 2),
		sample(testPacific, testSouth, 3),
	)
	got := ComputeDiversity(ds)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].NSamples)
	assert.Equal(t, 1, got[0].NMethods())
}

func TestComputeDiversityDistributionOrder(t *testing.T) {
	ds := dataset(
		withMethod(sample(testAtlantic, testNorth, 1), testManta),
		withMethod(sample(testAtlantic, testNorth, 1), testNeuston),
		withMethod(sample(testAtlantic, testNorth, 1), testNeuston),
		withMethod(sample(testPacific, testSouth, 1), testManta),
	)
	got := ComputeDiversity(ds)
	require.Len(t, got, 2)
	assert.Equal(t, testAtlantic, got[0].Key.Ocean, "more diverse region first")
	assert.Equal(t, []MethodCount{{testNeuston, 2}, {testManta, 1}}, got[0].Distribution)

	dist, ok := got[0].Value().Get("methodDistribution")
	require.True(t, ok)
	require.Len(t, dist.Fields(), 2)
	assert.Equal(t, testNeuston, dist.Fields()[0].Key)
}
