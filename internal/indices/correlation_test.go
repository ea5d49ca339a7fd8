package indices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

func depthSeries(n int, conc func(i int) float64) domain.Dataset {
	obs := make([]domain.Observation, 0, n+2)
	for i := 1; i <= n; i++ {
		obs = append(obs, withDepth(sample(testAtlantic, testNorth, conc(i)), float64(i)))
	}
	// Never counted: no depth, or a non-positive depth.
	obs = append(obs, sample(testAtlantic, testNorth, 1))
	obs = append(obs, withDepth(sample(testAtlantic, testNorth, 1), 0))
	return dataset(obs...)
}

func TestComputeDepthCorrelationInsufficient(t *testing.T) {
	for n := 0; n < MinCorrelationSamples; n++ {
		got := ComputeDepthCorrelation(depthSeries(n, func(i int) float64 { return float64(i) }))
		assert.Equal(t, DepthCorrelation{NSamples: n}, got)

		v := got.Value()
		for _, key := range []string{"correlation", "direction", "strength"} {
			field, ok := v.Get(key)
			require.True(t, ok)
			assert.True(t, field.IsNull(), key)
		}
	}
}

func TestComputeDepthCorrelation(t *testing.T) {
	tests := []struct {
		name      string
		conc      func(i int) float64
		want      float64
		direction string
		strength  string
	}{
		{"perfect positive", func(i int) float64 { return float64(2 * i) }, 1, DirectionPositive, StrengthStrong},
		{"perfect negative", func(i int) float64 { return float64(100 - i) }, -1, DirectionNegative, StrengthStrong},
		{"alternating", func(i int) float64 { return float64(i%2*10 + 1) }, -0.174, DirectionNegative, StrengthWeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDepthCorrelation(depthSeries(10, tt.conc))
			assert.Equal(t, 10, got.NSamples)
			require.NotNil(t, got.Coefficient)
			assert.InDelta(t, tt.want, *got.Coefficient, 1e-9)
			assert.Equal(t, tt.direction, got.Direction)
			assert.Equal(t, tt.strength, got.Strength)
		})
	}
}

func TestComputeDepthCorrelationConstant(t *testing.T) {
	got := ComputeDepthCorrelation(depthSeries(12, func(int) float64 { return 3 }))
	assert.Equal(t, 12, got.NSamples)
	assert.Nil(t, got.Coefficient)
	assert.Empty(t, got.Strength)
}
