package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandIndex(t *testing.T) {
	tests := []struct {
		c    float64
		want string
	}{
		{0.05, "Very Low (0-0.1)"},
		{0.1, "Very Low (0-0.1)"},
		{0.1000001, "Low (0.1-0.5)"},
		{0.5, "Low (0.1-0.5)"},
		{1, "Medium (0.5-1.0)"},
		{5, "High (1.0-5.0)"},
		{5.01, "Very High (>5.0)"},
		{1e6, "Very High (>5.0)"},
	}
	for _, tt := range tests {
		i, ok := BandIndex(tt.c)
		assert.True(t, ok)
		assert.Equal(t, tt.want, ConcentrationBands[i].Label, "%v", tt.c)
	}

	for _, c := range []float64{0, -0.3} {
		i, ok := BandIndex(c)
		assert.False(t, ok)
		assert.Equal(t, -1, i)
	}
}

func TestCompareRegionKeys(t *testing.T) {
	a := RegionKey{Ocean: "Atlantic", Region: "North"}
	b := RegionKey{Ocean: "Atlantic", Region: ""}
	c := RegionKey{Ocean: "", Region: "North"}
	d := RegionKey{Ocean: "Pacific", Region: "East"}

	assert.Negative(t, CompareRegionKeys(a, b))
	assert.Negative(t, CompareRegionKeys(d, c))
	assert.Negative(t, CompareRegionKeys(a, d))
	assert.Zero(t, CompareRegionKeys(a, a))
	assert.True(t, a.Complete())
	assert.False(t, b.Complete())
}
