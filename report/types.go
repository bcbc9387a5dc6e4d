package report

import (
	"context"
	"io"
	"time"
)

// Format is the report output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ReservedDateKey is the row key the summary row carries the generation date under.
const ReservedDateKey = "Data"

// ConsumptionTableID identifies the optional per-date consumption table.
const ConsumptionTableID = "consumption-by-date-table"

// DefaultProductName is stamped in every page footer.
const DefaultProductName = "Flcomm Manager"

// Column defines a report column. Key is used to look values up in a Row.
type Column struct {
	Header string
	Key    string
}

// Row maps column keys to display strings.
type Row map[string]string

// Value returns the value stored under key, or "" when the row has none.
func (r Row) Value(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// Table is an ordered column list plus rows aligned to it.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Values returns row values in column order, with missing keys as "".
func (t Table) Values(row Row) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = row.Value(col.Key)
	}
	return out
}

// Page is a single report page.
type Page struct {
	Title         string
	TitleFontSize float64
	Stamp         string
	Table         Table
	StartY        float64
}

// Document is a composed report ready to be rendered.
type Document struct {
	Title       string
	GeneratedOn string
	Pages       []Page
}

// RowCount returns the number of rows across all pages.
func (d Document) RowCount() int {
	total := 0
	for _, page := range d.Pages {
		total += len(page.Table.Rows)
	}
	return total
}

// SourceTable is a table as read from the display surface. Cell text is the
// rendered text of the cell, line breaks included.
type SourceTable struct {
	Header    []string
	Body      [][]string
	Footer    []string
	HasFooter bool
}

// TableSource looks tables up by element ID.
type TableSource interface {
	Table(ctx context.Context, id string) (SourceTable, bool, error)
}

// Request captures an export request.
type Request struct {
	TableID string
	Title   string
	Format  Format
	Locale  string
}

// ArtifactMeta describes a saved report.
type ArtifactMeta struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArtifactRef references a saved report.
type ArtifactRef struct {
	Key  string
	Meta ArtifactMeta
}

// Saver persists the rendered report. It plays the role of the browser download.
type Saver interface {
	Save(ctx context.Context, filename string, r io.Reader, meta ArtifactMeta) (ArtifactRef, error)
}

// Result captures a completed export.
type Result struct {
	ID       string
	Format   Format
	Filename string
	Pages    int
	Rows     int
	Bytes    int64
	Artifact ArtifactRef
}
