// Package domain models ocean microplastics survey observations.
//
// # Data Source
//
// Observations come from a single tabular export of the NOAA NCEI marine
// microplastics database: one row per sample, fixed named columns. The
// columns the pipeline reads are listed as Col* constants; every other column
// is carried through untouched in [RawRecord] so completeness can be scored
// against the broader schema.
//
// # Missing Values
//
// A field is missing when it is empty or holds one of the NA tokens emitted by
// common spreadsheet and dataframe exports ("NA", "N/A", "NaN", "null",
// "None", "#N/A", ...). See [IsMissing].
//
// # Date Format
//
// The "Date (MM-DD-YYYY)" column is nominally month/day/year, usually with a
// 12-hour time suffix:
//
//	"7/13/1989 12:00:00 AM"  →  1989-07-13T00:00:00
//	"7/13/1989"              →  1989-07-13T00:00:00
//
// Anything else falls back to a best-effort free-form parse. Unparseable dates
// become nil and the observation stays eligible for non-temporal metrics.
//
// # Mandatory Fields
//
// An observation survives normalization only when the measurement parses to a
// positive finite number and both coordinates parse and fall inside the WGS-84
// range. Nothing else is mandatory.
//
// # Concentration Bands
//
// Concentrations (pieces/m³) are binned into five right-closed severity bands
// for flow projections:
//
//	(0, 0.1]  very low | (0.1, 0.5] low | (0.5, 1.0] medium | (1.0, 5.0] high | > 5.0 very high
package domain
