package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/domain"
	"github.com/couchcryptid/microplastics-etl/internal/observability"
)

func TestMain(m *testing.M) {
	newMetrics = observability.NewMetricsForTesting
	os.Exit(m.Run())
}

const fixture = "Ocean,Region,Country,Microplastics measurement,Latitude (degree),Longitude(degree),Water Sample Depth (m),Sampling Method,Marine Setting,Date (MM-DD-YYYY)\n" +
	"Atlantic,North,Spain,0.2,41,2,5,Manta net,Ocean,3/1/2010 12:00:00 AM\n" +
	"Atlantic,North,Spain,0.8,42,3,10,Neuston net,Ocean,3/1/2011 12:00:00 AM\n" +
	"Pacific,South,Chile,1.5,,-70,,Manta net,Beach,\n"

func TestRunCommandWritesDocuments(t *testing.T) {
	in := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(in, []byte(fixture), 0o644))
	out := filepath.Join(t.TempDir(), "processed")
	textfile := filepath.Join(t.TempDir(), "etl.prom")
	t.Setenv("METRICS_TEXTFILE", textfile)
	t.Setenv("SAMPLE_SEED", "7")

	rootCmd.SetArgs([]string{"run", "--input", in, "--output-dir", out})
	require.NoError(t, rootCmd.Execute())

	for _, name := range document.Names {
		_, err := os.Stat(filepath.Join(out, name+".json"))
		assert.NoError(t, err, name)
	}
	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "microplastics_etl_rows_dropped_total 1")
}

func TestRunCommandMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")
	rootCmd.SetArgs([]string{"run", "--input", missing, "--output-dir", t.TempDir()})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Equal(t, "input file not found: "+missing, err.Error())
}
