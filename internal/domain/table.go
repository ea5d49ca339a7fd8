package domain

// Source column names.
const (
	ColOcean          = "Ocean"
	ColRegion         = "Region"
	ColCountry        = "Country"
	ColMeasurement    = "Microplastics measurement"
	ColLatitude       = "Latitude (degree)"
	ColLongitude      = "Longitude(degree)"
	ColWaterDepth     = "Water Sample Depth (m)"
	ColSamplingMethod = "Sampling Method"
	ColMarineSetting  = "Marine Setting"
	ColDate           = "Date (MM-DD-YYYY)"
	ColOceanBottom    = "Ocean Bottom Depth (m)"
	ColSedimentDepth  = "Sediment Sample Depth (m)"
	ColMeshSize       = "Mesh size (mm)"
	ColUnit           = "Unit"
	ColOrganization   = "ORGANIZATION"
	ColKeywords       = "KEYWORDS"
)

// RawRecord is one source row keyed by column name.
type RawRecord map[string]string

// Get returns the trimmed value of a column and whether it is present and not
// an NA token.
func (r RawRecord) Get(column string) (string, bool) {
	v, ok := r[column]
	if !ok || IsMissing(v) {
		return "", false
	}
	return trimValue(v), true
}

// Table is the raw source: the header in file order plus every data row.
type Table struct {
	Columns []string
	Records []RawRecord
}

// HasColumn reports whether the source header contains the column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
