package domain

// Band is a right-closed concentration interval (Lower, Upper]. The last band
// is unbounded above.
type Band struct {
	Label string
	Lower float64
	Upper float64 // 0 means unbounded
}

// ConcentrationBands are the fixed bands used by the flow projection.
var ConcentrationBands = []Band{
	{Label: "Very Low (0-0.1)", Lower: 0, Upper: 0.1},
	{Label: "Low (0.1-0.5)", Lower: 0.1, Upper: 0.5},
	{Label: "Medium (0.5-1.0)", Lower: 0.5, Upper: 1},
	{Label: "High (1.0-5.0)", Lower: 1, Upper: 5},
	{Label: "Very High (>5.0)", Lower: 5},
}

// BandIndex returns the position in ConcentrationBands of the band containing
// c. Values at or below zero fall outside every band.
func BandIndex(c float64) (int, bool) {
	for i, b := range ConcentrationBands {
		if c > b.Lower && (b.Upper == 0 || c <= b.Upper) {
			return i, true
		}
	}
	return -1, false
}
