package export

import (
	"bytes"
	"context"
	"strings"

	"github.com/lumenarts/forge/pkg/model"
)

// TextExporter writes the document as a fixed-width plain-text table. Output
// is byte-for-byte deterministic for identical inputs.
type TextExporter struct{}

// NewText returns the plain-text exporter.
func NewText() *TextExporter {
	return &TextExporter{}
}

func (x *TextExporter) Name() string {
	return "text"
}

func (x *TextExporter) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (x *TextExporter) Export(ctx context.Context, t model.Template, e model.Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := Rows(t, e)
	if err != nil {
		return nil, err
	}

	const fieldHeader, valueHeader = "Field", "Value"
	width := len(fieldHeader)
	for _, row := range rows {
		if len(row.Field) > width {
			width = len(row.Field)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(t.Title)
	buf.WriteByte('\n')
	if t.Description != "" {
		buf.WriteString(t.Description)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')

	writeRow := func(field, value string) {
		buf.WriteString(field)
		buf.WriteString(strings.Repeat(" ", width-len(field)))
		buf.WriteString(" | ")
		buf.WriteString(value)
		buf.WriteByte('\n')
	}

	writeRow(fieldHeader, valueHeader)
	buf.WriteString(strings.Repeat("-", width))
	buf.WriteString("-+-")
	buf.WriteString(strings.Repeat("-", len(valueHeader)))
	buf.WriteByte('\n')
	for _, row := range rows {
		writeRow(row.Field, row.Value)
	}

	return buf.Bytes(), nil
}
