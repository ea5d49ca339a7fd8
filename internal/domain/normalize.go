package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts tried before the free-form fallback, in order.
var dateLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
}

// naTokens are the spellings treated as a missing value.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw value counts as missing.
func IsMissing(v string) bool {
	_, ok := naTokens[trimValue(v)]
	return ok
}

func trimValue(v string) string {
	return strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
}

// ParseDate parses a survey date: month/day/year with a 12-hour time suffix,
// then month/day/year alone, then a free-form parse. The first form that
// succeeds wins.
func ParseDate(s string) (time.Time, bool) {
	if IsMissing(s) {
		return time.Time{}, false
	}
	s = trimValue(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNumber parses a finite real number. Missing, malformed, NaN and
// infinite values all report false.
func ParseNumber(s string) (float64, bool) {
	if IsMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimValue(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseLatitude parses a latitude in [-90, 90].
func ParseLatitude(s string) (float64, bool) {
	return parseInRange(s, 90)
}

// ParseLongitude parses a longitude in [-180, 180].
func ParseLongitude(s string) (float64, bool) {
	return parseInRange(s, 180)
}

func parseInRange(s string, limit float64) (float64, bool) {
	v, ok := ParseNumber(s)
	if !ok || v < -limit || v > limit {
		return 0, false
	}
	return v, true
}

// NormalizeRecord coerces one raw row into an Observation. It returns false
// when the row fails the mandatory-field filter: the measurement must be a
// positive number and both coordinates must be valid.
func NormalizeRecord(rec RawRecord) (Observation, bool) {
	conc, ok := ParseNumber(rec[ColMeasurement])
	if !ok || conc <= 0 {
		return Observation{}, false
	}
	lat, ok := ParseLatitude(rec[ColLatitude])
	if !ok {
		return Observation{}, false
	}
	lon, ok := ParseLongitude(rec[ColLongitude])
	if !ok {
		return Observation{}, false
	}

	obs := Observation{
		Ocean:         text(rec, ColOcean),
		Region:        text(rec, ColRegion),
		Country:       text(rec, ColCountry),
		Concentration: conc,
		Method:        text(rec, ColSamplingMethod),
		MarineSetting: text(rec, ColMarineSetting),
		Lat:           lat,
		Lon:           lon,
		RawDate:       text(rec, ColDate),
		Raw:           rec,
	}
	if depth, ok := ParseNumber(rec[ColWaterDepth]); ok {
		obs.Depth = &depth
	}
	if date, ok := ParseDate(obs.RawDate); ok {
		year := date.Year()
		obs.Date = &date
		obs.Year = &year
	}
	return obs, true
}

// Normalize builds the working Dataset from the raw table. Individual parse
// failures never abort: they become missing fields or a dropped row.
func Normalize(t Table) (Dataset, NormalizeStats) {
	stats := NormalizeStats{Read: len(t.Records)}
	out := make([]Observation, 0, len(t.Records))
	for _, rec := range t.Records {
		obs, ok := NormalizeRecord(rec)
		if !ok {
			stats.Dropped++
			continue
		}
		if obs.Date != nil {
			stats.DatesParsed++
		} else {
			stats.DatesMissing++
		}
		out = append(out, obs)
	}
	stats.Retained = len(out)

	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return Dataset{Columns: columns, Observations: out}, stats
}

func text(rec RawRecord, column string) string {
	v, _ := rec.Get(column)
	return v
}
