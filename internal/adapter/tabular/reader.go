// Package tabular reads the survey export into a raw domain.Table. CSV, TSV
// and XLSX sources are supported, chosen by file extension.
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/microplastics-etl/internal/domain"
)

// Reader loads the whole source table in one pass.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	sheet  string
	logger *slog.Logger
}

// NewReader creates a Reader for path. sheet selects the XLSX worksheet and
// defaults to the first one.
func NewReader(path, sheet string, logger *slog.Logger) *Reader {
	return &Reader{path: path, sheet: sheet, logger: logger}
}

// Path returns the source file path.
func (r *Reader) Path() string { return r.path }

// Extract reads the source. A missing file wraps domain.ErrSourceNotFound,
// any other read failure wraps domain.ErrSourceUnreadable, and a file with no
// header row wraps domain.ErrEmptySource.
func (r *Reader) Extract(ctx context.Context) (domain.Table, error) {
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, r.path)
		}
		return domain.Table{}, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, r.path, err)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".xlsx", ".xlsm":
		rows, err = r.readWorkbook()
	case ".tsv", ".tab":
		rows, err = r.readDelimited(ctx, '\t')
	default:
		rows, err = r.readDelimited(ctx, ',')
	}
	if err != nil {
		if ctx.Err() != nil {
			return domain.Table{}, ctx.Err()
		}
		return domain.Table{}, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnreadable, r.path, err)
	}

	t, err := buildTable(rows)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: %s", err, r.path)
	}
	r.logger.Debug("source loaded", "path", r.path, "columns", len(t.Columns), "rows", len(t.Records))
	return t, nil
}

func (r *Reader) readDelimited(ctx context.Context, delim rune) ([][]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func (r *Reader) readWorkbook() ([][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	return f.GetRows(sheet)
}

// buildTable keys every data row by the header. Short rows leave the
// trailing columns absent; cells beyond the header are ignored.
func buildTable(rows [][]string) (domain.Table, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return domain.Table{}, domain.ErrEmptySource
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(domain.RawRecord, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			if _, dup := rec[name]; dup {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return domain.Table{Columns: header, Records: records}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
