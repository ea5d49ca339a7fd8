// Command genmock generates a synthetic microplastics sampling table for
// local runs and tests. A share of rows carries the data-quality faults seen
// in the real source: missing or non-numeric measurements, out-of-range
// coordinates, unparseable dates, NA tokens and blank group keys. It runs the
// actual normalization over the result so the reported counts match what the
// pipeline will see.
//
// Usage:
//
//	go run ./cmd/genmock -out data/raw/microplastics.csv -rows 2000 -seed 42
//	go run ./cmd/genmock -out data/raw/microplastics.xlsx
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

var header = []string{
	domain.ColOcean,
	domain.ColRegion,
	domain.ColCountry,
	domain.ColMeasurement,
	domain.ColUnit,
	domain.ColLatitude,
	domain.ColLongitude,
	domain.ColWaterDepth,
	domain.ColOceanBottom,
	domain.ColSedimentDepth,
	domain.ColMeshSize,
	domain.ColSamplingMethod,
	domain.ColMarineSetting,
	domain.ColDate,
	domain.ColOrganization,
	domain.ColKeywords,
}

// site is one sampling area; observations scatter around its centre.
type site struct {
	ocean, region, country string
	lat, lon               float64
	baseline               float64 // median concentration, pieces/m3
}

var sites = []site{
	{"Atlantic Ocean", "North Atlantic", "United States", 38.5, -70.0, 0.4},
	{"Atlantic Ocean", "North Atlantic", "Portugal", 39.0, -12.0, 0.3},
	{"Atlantic Ocean", "South Atlantic", "Brazil", -23.0, -40.0, 0.2},
	{"Pacific Ocean", "North Pacific", "Japan", 34.0, 142.0, 1.8},
	{"Pacific Ocean", "North Pacific", "United States", 33.0, -140.0, 3.5},
	{"Pacific Ocean", "South Pacific", "Chile", -33.0, -75.0, 0.15},
	{"Indian Ocean", "Bay of Bengal", "India", 15.0, 88.0, 1.1},
	{"Indian Ocean", "Arabian Sea", "Oman", 18.0, 62.0, 0.6},
	{"Mediterranean Sea", "Western Mediterranean", "Spain", 39.5, 3.0, 2.2},
	{"Arctic Ocean", "Barents Sea", "Norway", 74.0, 30.0, 0.05},
}

var (
	methods  = []string{"Manta net", "Neuston net", "Grab sample", "Bongo net", "CTD rosette", "Plankton net"}
	settings = []string{"Ocean", "Coastal", "Estuary", "Beach", "Bay"}
	orgs     = []string{"NOAA", "JAMSTEC", "IFREMER", "CSIRO", ""}
	naTokens = []string{"", "NA", "N/A", "NaN", "null", "#N/A"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path (.csv or .xlsx)")
	rows := flag.Int("rows", 1000, "number of data rows")
	seed := flag.Uint64("seed", 1, "random seed")
	faultRate := flag.Float64("fault-rate", 0.1, "share of rows carrying a data-quality fault")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows < 1 {
		return fmt.Errorf("-rows must be positive")
	}

	g := &generator{rnd: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), faultRate: *faultRate}
	records := make([][]string, *rows)
	for i := range records {
		records[i] = g.row()
	}

	if err := write(*out, records); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d rows to %s", len(records), *out)

	printStats(records, g.faults)
	return nil
}

type generator struct {
	rnd       *rand.Rand
	faultRate float64
	faults    map[string]int
}

func (g *generator) pick(values []string) string {
	return values[g.rnd.IntN(len(values))]
}

func (g *generator) row() []string {
	s := sites[g.rnd.IntN(len(sites))]
	date := time.Date(2000+g.rnd.IntN(24), time.Month(1+g.rnd.IntN(12)), 1+g.rnd.IntN(28), 0, 0, 0, 0, time.UTC)
	// Concentrations are log-normal around the site baseline and drift upward over time.
	drift := 1 + 0.03*float64(date.Year()-2000)
	conc := s.baseline * drift * math.Exp(g.rnd.NormFloat64())
	depth := math.Abs(g.rnd.NormFloat64()) * 8
	bottom := depth + 50 + g.rnd.Float64()*3000

	rec := []string{
		s.ocean,
		s.region,
		s.country,
		strconv.FormatFloat(conc, 'f', 4, 64),
		"pieces/m3",
		strconv.FormatFloat(s.lat+g.rnd.NormFloat64()*2, 'f', 4, 64),
		strconv.FormatFloat(s.lon+g.rnd.NormFloat64()*2, 'f', 4, 64),
		strconv.FormatFloat(depth, 'f', 2, 64),
		strconv.FormatFloat(bottom, 'f', 1, 64),
		g.pick(naTokens),
		strconv.FormatFloat(0.053+g.rnd.Float64()*0.3, 'f', 3, 64),
		g.pick(methods),
		g.pick(settings),
		date.Format("1/2/2006 3:04:05 PM"),
		g.pick(orgs),
		"microplastics; surface water",
	}
	if g.rnd.Float64() < g.faultRate {
		g.injectFault(rec)
	}
	return rec
}

func (g *generator) injectFault(rec []string) {
	if g.faults == nil {
		g.faults = map[string]int{}
	}
	idx := func(col string) int {
		for i, h := range header {
			if h == col {
				return i
			}
		}
		panic("unknown column " + col)
	}

	kinds := []string{"measurement", "non-positive", "latitude", "longitude", "date", "na-depth", "region", "method"}
	kind := g.pick(kinds)
	g.faults[kind]++
	switch kind {
	case "measurement":
		rec[idx(domain.ColMeasurement)] = g.pick([]string{"", "NaN", "n.d.", "inf"})
	case "non-positive":
		rec[idx(domain.ColMeasurement)] = g.pick([]string{"0", "-0.5"})
	case "latitude":
		rec[idx(domain.ColLatitude)] = g.pick([]string{"", "95.2", "abc"})
	case "longitude":
		rec[idx(domain.ColLongitude)] = g.pick([]string{"", "-181", "N/A"})
	case "date":
		rec[idx(domain.ColDate)] = g.pick([]string{"", "unknown", "13/45/2010"})
	case "na-depth":
		rec[idx(domain.ColWaterDepth)] = g.pick(naTokens)
	case "region":
		rec[idx(domain.ColRegion)] = ""
	case "method":
		rec[idx(domain.ColSamplingMethod)] = g.pick(naTokens)
	}
}

func write(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeWorkbook(path, records)
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeWorkbook(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	setRow := func(row int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}
	if err := setRow(1, header); err != nil {
		return err
	}
	for i, rec := range records {
		if err := setRow(i+2, rec); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func printStats(records [][]string, faults map[string]int) {
	table := domain.Table{Columns: header}
	for _, rec := range records {
		raw := domain.RawRecord{}
		for i, h := range header {
			raw[h] = rec[i]
		}
		table.Records = append(table.Records, raw)
	}
	_, stats := domain.Normalize(table)

	fmt.Printf("\nrows:          %d\n", stats.Read)
	fmt.Printf("retained:      %d\n", stats.Retained)
	fmt.Printf("dropped:       %d\n", stats.Dropped)
	fmt.Printf("dates parsed:  %d\n", stats.DatesParsed)
	fmt.Printf("dates missing: %d\n", stats.DatesMissing)

	if len(faults) == 0 {
		return
	}
	kinds := make([]string, 0, len(faults))
	for k := range faults {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Println("\ninjected faults:")
	for _, k := range kinds {
		fmt.Printf("  %-14s %d\n", k, faults[k])
	}
}
