package domain

import (
	"strings"
	"time"
)

// Observation is one retained sample after normalization. Text fields are
// empty when missing in the source.
type Observation struct {
	Ocean         string
	Region        string
	Country       string
	Concentration float64
	Depth         *float64
	Method        string
	MarineSetting string
	Lat           float64
	Lon           float64
	RawDate       string
	Date          *time.Time
	Year          *int

	// Raw keeps the full source row for completeness scoring.
	Raw RawRecord
}

// Key returns the (ocean, region) grouping key.
func (o Observation) Key() RegionKey {
	return RegionKey{Ocean: o.Ocean, Region: o.Region}
}

// RegionKey identifies an (ocean, region) group. Empty components are
// legitimate keys: rows with a missing ocean or region form their own group.
type RegionKey struct {
	Ocean  string
	Region string
}

// Complete reports whether both components are present.
func (k RegionKey) Complete() bool {
	return k.Ocean != "" && k.Region != ""
}

// CompareRegionKeys orders keys by ocean then region, missing components last.
func CompareRegionKeys(a, b RegionKey) int {
	if c := CompareLabels(a.Ocean, b.Ocean); c != 0 {
		return c
	}
	return CompareLabels(a.Region, b.Region)
}

// CompareLabels orders text labels lexically with missing ("") sorted last.
func CompareLabels(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(a, b)
}

// Dataset is the normalized, immutable working set shared by every engine.
type Dataset struct {
	// Columns is the source schema, used to decide which fields count
	// towards completeness.
	Columns      []string
	Observations []Observation
}

// HasColumn reports whether the source schema contained the column.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeStats counts what normalization kept and dropped.
type NormalizeStats struct {
	Read         int
	Retained     int
	Dropped      int
	DatesParsed  int
	DatesMissing int
}
