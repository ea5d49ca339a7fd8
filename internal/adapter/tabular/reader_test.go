package tabular

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestExtractCSV(t *testing.T) {
	body := "\ufeffOcean,Region,Microplastics measurement,Latitude (degree),Longitude(degree),KEYWORDS\n" +
		"Atlantic,North,0.5,40.1,-30.2,\"plastic, nets\"\n" +
		"\n" +
		"Pacific,South,1.2,-10\n"
	path := writeFile(t, "samples.csv", body)

	table, err := NewReader(path, "", slog.Default()).Extract(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		domain.ColOcean, domain.ColRegion, domain.ColMeasurement,
		domain.ColLatitude, domain.ColLongitude, domain.ColKeywords,
	}, table.Columns)
	require.Len(t, table.Records, 2, "blank lines are skipped")
	assert.Equal(t, "plastic, nets", table.Records[0][domain.ColKeywords])

	_, ok := table.Records[1].Get(domain.ColLongitude)
	assert.False(t, ok, "short rows leave trailing columns missing")
}

func TestExtractTSV(t *testing.T) {
	path := writeFile(t, "samples.tsv", "Ocean\tRegion\nIndian\tWest\n")
	table, err := NewReader(path, "", slog.Default()).Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "West", table.Records[0][domain.ColRegion])
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Samples"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	rows := [][]any{
		{domain.ColOcean, domain.ColRegion, domain.ColMeasurement},
		{"Arctic", "Barents", 0.25},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "samples.xlsx")
	require.NoError(t, f.SaveAs(path))

	for _, name := range []string{"", sheet} {
		table, err := NewReader(path, name, slog.Default()).Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, table.Records, 1)
		assert.Equal(t, "Arctic", table.Records[0][domain.ColOcean])
		assert.Equal(t, "0.25", table.Records[0][domain.ColMeasurement])
	}

	_, err := NewReader(path, "Missing", slog.Default()).Extract(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
}

func TestExtractErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.csv")
		_, err := NewReader(path, "", slog.Default()).Extract(context.Background())
		require.ErrorIs(t, err, domain.ErrSourceNotFound)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		_, err := NewReader(path, "", slog.Default()).Extract(context.Background())
		assert.ErrorIs(t, err, domain.ErrEmptySource)
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		path := writeFile(t, "broken.xlsx", "not a zip archive")
		_, err := NewReader(path, "", slog.Default()).Extract(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewReader(t.TempDir(), "", slog.Default()).Extract(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreadable)
	})

	t.Run("cancelled", func(t *testing.T) {
		path := writeFile(t, "samples.csv", "Ocean\nAtlantic\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewReader(path, "", slog.Default()).Extract(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuildTableDuplicateHeader(t *testing.T) {
	table, err := buildTable([][]string{{"Ocean", "Ocean", ""}, {"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, domain.RawRecord{"Ocean": "a"}, table.Records[0])
}
