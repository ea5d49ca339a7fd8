package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

func TestDescribe(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Summary{}, Describe(nil))
	})

	t.Run("single value has no deviation", func(t *testing.T) {
		s := Describe([]float64{4})
		assert.Equal(t, 1, s.N)
		assert.Equal(t, 4.0, s.Mean)
		assert.Nil(t, s.SD)
		assert.Zero(t, s.SDOrZero())
	})

	t.Run("sample deviation", func(t *testing.T) {
		s := Describe([]float64{1, 2, 3, 10})
		assert.Equal(t, 4, s.N)
		assert.Equal(t, 4.0, s.Mean)
		assert.Equal(t, 2.5, s.Median)
		assert.Equal(t, 1.0, s.Min)
		assert.Equal(t, 10.0, s.Max)
		require.NotNil(t, s.SD)
		assert.InDelta(t, math.Sqrt(50.0/3), *s.SD, 1e-12)
	})
}

func TestGroupByRegion(t *testing.T) {
	obs := []domain.Observation{
		sample(testPacific, testNorth, 1),
		sample("", testNorth, 2),
		sample(testAtlantic, "", 3),
		sample(testAtlantic, testSouth, 4),
		sample(testPacific, testNorth, 5),
	}
	groups := GroupByRegion(obs)
	require.Len(t, groups, 4)

	keys := make([]domain.RegionKey, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
	}
	assert.Equal(t, []domain.RegionKey{
		{Ocean: testAtlantic, Region: testSouth},
		{Ocean: testAtlantic, Region: ""},
		{Ocean: testPacific, Region: testNorth},
		{Ocean: "", Region: testNorth},
	}, keys)
	assert.Equal(t, []float64{1, 5}, groups[2].Concentrations())
}

func TestRegionGroupCountry(t *testing.T) {
	a := sample(testAtlantic, testNorth, 1)
	b := sample(testAtlantic, testNorth, 2)
	b.Country = "Spain"
	g := RegionGroup{Observations: []domain.Observation{a, b}}
	assert.Equal(t, "Spain", g.Country())
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{2.5, 0, 3},
		{0.375, 2, 0.38},
		{12.345678, 3, 12.346},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round(tt.v, tt.places), "round(%v, %d)", tt.v, tt.places)
	}
}

func TestPercentChangeRoundsHalfAwayFromZero(t *testing.T) {
	// (8.25 - 8) / 8 * 100 = 3.125 exactly; half-to-even would give 3.12.
	got := percentChange(8, 8.25)
	require.NotNil(t, got)
	assert.Equal(t, 3.13, *got)
}
