// Command validate performs integrity checks over a directory of documents
// written by the pipeline: every document is present and well-formed JSON
// (so no NaN or Infinity tokens), the temporal change chains are consistent,
// every index lies in its range, sampled projections respect their caps, and
// the per-region tables agree on the total sample count.
//
// Usage:
//
//	go run ./cmd/validate -dir data/processed -scatter-cap 1000 -parallel-cap 500
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/couchcryptid/microplastics-etl/internal/document"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type row = map[string]any

func main() {
	dir := flag.String("dir", "", "directory containing the generated JSON documents")
	scatterCap := flag.Int("scatter-cap", 1000, "expected scatter_data row cap")
	parallelCap := flag.Int("parallel-cap", 500, "expected parallel_data row cap")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dir, *scatterCap, *parallelCap); code != 0 {
		os.Exit(code)
	}
}

func run(dir string, scatterCap, parallelCap int) int {
	fmt.Println("=== Microplastics Output Validation ===")
	fmt.Println()

	// ── Load all documents ──
	load := &phase{name: "Documents present and well-formed"}
	docs := loadDocuments(dir, load)

	// ── Run validation phases ──
	phases := []*phase{load}
	if load.passed() {
		phases = append(phases,
			validateTemporalChains(docs),
			validateIndexRanges(docs),
			validateSampling(docs, scatterCap, parallelCap),
			validateCrossDocument(docs),
		)
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-20)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("FAILED")
		return 1
	}
	fmt.Println("OK")
	return 0
}

func loadDocuments(dir string, p *phase) map[string]any {
	docs := map[string]any{}
	for _, name := range document.Names {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			p.errorf("%s: missing", name)
			continue
		}
		if err != nil {
			p.errorf("%s: %v", name, err)
			continue
		}
		// encoding/json rejects NaN and Infinity, so decoding is the token check.
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			p.errorf("%s: invalid JSON: %v", name, err)
			continue
		}
		docs[name] = v
	}
	return docs
}

// validateTemporalChains checks that every chain starts with a null change,
// links each step to the previous mean and recomputes the percent change.
func validateTemporalChains(docs map[string]any) *phase {
	p := &phase{name: "Temporal change chains"}

	checkChain(p, "by_year", rows(docs[document.ByYear]))

	chains := map[string][]row{}
	var order []string
	for _, r := range rows(docs[document.ByYearRegion]) {
		key := fmt.Sprintf("%v/%v", r["ocean"], r["region"])
		if _, ok := chains[key]; !ok {
			order = append(order, key)
		}
		chains[key] = append(chains[key], r)
	}
	for _, key := range order {
		checkChain(p, "by_year_region "+key, chains[key])
	}
	return p
}

func checkChain(p *phase, label string, chain []row) {
	for i, r := range chain {
		year, _ := number(r["year"])
		mean, ok := number(r["meanConcentration"])
		if !ok {
			p.errorf("%s year %v: meanConcentration missing", label, r["year"])
			continue
		}
		if i == 0 {
			if r["TCT"] != nil || r["prev_year_conc"] != nil {
				p.errorf("%s year %v: first year must have null TCT and prev_year_conc", label, year)
			}
			continue
		}
		prevYear, _ := number(chain[i-1]["year"])
		if year <= prevYear {
			p.errorf("%s: years not ascending (%v after %v)", label, year, prevYear)
		}
		prevMean, _ := number(chain[i-1]["meanConcentration"])
		prev, ok := number(r["prev_year_conc"])
		if !ok || !near(prev, prevMean, 1e-9) {
			p.errorf("%s year %v: prev_year_conc %v != previous mean %v", label, year, r["prev_year_conc"], prevMean)
			continue
		}
		tct, ok := number(r["TCT"])
		if prev == 0 {
			if ok {
				p.errorf("%s year %v: TCT must be null when the previous mean is 0", label, year)
			}
			continue
		}
		want := (mean - prev) / prev * 100
		if !ok || !near(tct, want, 0.006) {
			p.errorf("%s year %v: TCT %v, want %.2f", label, year, r["TCT"], want)
		}
	}
}

func validateIndexRanges(docs map[string]any) *phase {
	p := &phase{name: "Index ranges"}
	metrics, _ := docs[document.Metrics].(row)
	if metrics == nil {
		p.errorf("metrics: not an object")
		return p
	}

	for _, r := range rows(metrics["ICR"]) {
		checkRange(p, "ICR", r, "ICR", 0, 1)
		for _, k := range []string{"nSamples_norm", "meanConc_norm", "cv_norm"} {
			checkRange(p, "ICR", r, k, 0, 1)
		}
	}
	for _, r := range rows(metrics["dataCompleteness"]) {
		for _, k := range []string{"completenessIndex", "avgCompleteness", "criticalCompleteness"} {
			checkRange(p, "dataCompleteness", r, k, 0, 100)
		}
	}
	for _, r := range rows(metrics["methodDiversity"]) {
		checkRange(p, "methodDiversity", r, "normalizedDiversity", 0, 1)
		if h, ok := number(r["shannonIndex"]); ok && h < 0 {
			p.errorf("methodDiversity %v/%v: negative shannonIndex %v", r["ocean"], r["region"], h)
		}
	}
	for _, r := range rows(metrics["IGRM"]) {
		checkRange(p, "IGRM", r, "IGRM", 0, 1)
	}
	if dc, ok := metrics["depthCorrelation"].(row); ok {
		if c, ok := number(dc["correlation"]); ok && (c < -1 || c > 1) {
			p.errorf("depthCorrelation: coefficient %v outside [-1, 1]", c)
		}
	} else {
		p.errorf("metrics: depthCorrelation missing")
	}
	return p
}

func checkRange(p *phase, table string, r row, key string, lo, hi float64) {
	v, ok := number(r[key])
	if !ok {
		if r[key] != nil {
			p.errorf("%s %v/%v: %s is not a number", table, r["ocean"], r["region"], key)
		}
		return
	}
	if v < lo || v > hi {
		p.errorf("%s %v/%v: %s %v outside [%v, %v]", table, r["ocean"], r["region"], key, v, lo, hi)
	}
}

func validateSampling(docs map[string]any, scatterCap, parallelCap int) *phase {
	p := &phase{name: "Sampled projections"}
	scatter := rows(docs[document.ScatterData])
	if len(scatter) > scatterCap {
		p.errorf("scatter_data: %d rows exceeds cap %d", len(scatter), scatterCap)
	}
	for i, r := range scatter {
		if d, ok := number(r["depth"]); !ok || d <= 0 {
			p.errorf("scatter_data row %d: depth %v must be positive", i, r["depth"])
		}
	}
	parallel := rows(docs[document.ParallelData])
	if len(parallel) > parallelCap {
		p.errorf("parallel_data: %d rows exceeds cap %d", len(parallel), parallelCap)
	}
	for i, r := range parallel {
		for _, k := range []string{"concentration_norm", "depth_norm", "year_norm"} {
			if v, ok := number(r[k]); ok && (v < 0 || v > 1) {
				p.errorf("parallel_data row %d: %s %v outside [0, 1]", i, k, v)
			}
		}
	}
	return p
}

// validateCrossDocument checks that the tables covering every retained row
// agree with the summary count.
func validateCrossDocument(docs map[string]any) *phase {
	p := &phase{name: "Cross-document consistency"}
	metrics, _ := docs[document.Metrics].(row)
	summary, _ := metrics["summary"].(row)
	total, ok := number(summary["totalSamples"])
	if !ok {
		p.errorf("metrics.summary.totalSamples missing")
		return p
	}

	sum := func(rs []row, key string) float64 {
		var n float64
		for _, r := range rs {
			v, _ := number(r[key])
			n += v
		}
		return n
	}
	checks := []struct {
		label string
		n     float64
	}{
		{"by_region nSamples", sum(rows(docs[document.ByRegion]), "nSamples")},
		{"ICR nSamples", sum(rows(metrics["ICR"]), "nSamples")},
		{"IGRM nSamples", sum(rows(metrics["IGRM"]), "nSamples")},
	}
	for _, c := range checks {
		if c.n != total {
			p.errorf("%s = %v, summary totalSamples = %v", c.label, c.n, total)
		}
	}
	// Rows without a method or marine setting have no flow.
	if n := sum(rows(docs[document.SankeyData]), "count"); n > total {
		p.errorf("sankey_data count = %v exceeds summary totalSamples = %v", n, total)
	}
	return p
}

func rows(v any) []row {
	items, _ := v.([]any)
	out := make([]row, 0, len(items))
	for _, it := range items {
		if r, ok := it.(row); ok {
			out = append(out, r)
		}
	}
	return out
}

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
