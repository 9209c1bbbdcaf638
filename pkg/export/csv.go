package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/lumenarts/forge/pkg/model"
)

// CSVExporter writes the document as RFC 4180 CSV with a Field,Value header.
// The title and description travel in a comment-style first column pair so
// spreadsheet imports keep them visible.
type CSVExporter struct{}

// NewCSV returns the CSV exporter.
func NewCSV() *CSVExporter {
	return &CSVExporter{}
}

func (x *CSVExporter) Name() string {
	return "csv"
}

func (x *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (x *CSVExporter) Export(ctx context.Context, t model.Template, e model.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := Rows(t, e)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Template", t.Title},
		{"Description", t.Description},
		{"Field", "Value"},
	}
	for _, row := range rows {
		records = append(records, []string{row.Field, row.Value})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("export: write csv: %w", err)
	}
	return buf.Bytes(), nil
}
