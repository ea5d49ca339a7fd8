package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Output document names. Each is written to <name>.json.
const (
	ByRegion     = "by_region"
	ByYear       = "by_year"
	ByYearRegion = "by_year_region"
	ScatterData  = "scatter_data"
	MethodData   = "method_data"
	TreemapData  = "treemap_data"
	ParallelData = "parallel_data"
	ViolinData   = "violin_data"
	SankeyData   = "sankey_data"
	Metrics      = "metrics"
)

// Names lists every document a run produces, in write order.
var Names = []string{
	ByRegion, ByYear, ByYearRegion,
	ScatterData, MethodData, TreemapData, ParallelData, ViolinData, SankeyData,
	Metrics,
}

// Document is one named output.
type Document struct {
	Name string
	Body Value
}

// FileName returns the file name the document is stored under.
func (d Document) FileName() string { return d.Name + ".json" }

// Encode renders the document as indented UTF-8 JSON with a trailing newline.
// Non-ASCII text is written verbatim.
func Encode(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Body); err != nil {
		return nil, fmt.Errorf("encode %s: %w", d.Name, err)
	}
	return buf.Bytes(), nil
}
