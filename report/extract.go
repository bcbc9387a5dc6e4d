package report

import (
	"fmt"
	"strings"
)

// Cell values are assigned to columns by position, not by matching header
// text. A row that omits a cell shifts every later value one column left;
// that is the contract the rendered tables are built against.

// BuildColumns derives columns from header cell texts. Only the first line of
// each cell is kept, so a secondary annotation line (units, hints) never
// becomes part of the key.
func BuildColumns(header []string) []Column {
	columns := make([]Column, 0, len(header))
	for _, text := range header {
		label := HeaderLabel(text)
		columns = append(columns, Column{Header: label, Key: label})
	}
	return columns
}

// HeaderLabel returns the first line of a header cell text, trimmed.
func HeaderLabel(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(first)
}

// BuildRow assigns cells to columns positionally. A cell past the last column
// has nowhere to go and fails the row.
func BuildRow(columns []Column, cells []string) (Row, error) {
	if len(cells) > len(columns) {
		return nil, NewError(KindValidation, fmt.Sprintf("row has %d cells but table has %d columns", len(cells), len(columns)), nil)
	}
	row := make(Row, len(cells))
	for i, cell := range cells {
		row[columns[i].Key] = strings.TrimSpace(cell)
	}
	return row, nil
}

// BuildRows converts body rows into Rows aligned to columns.
func BuildRows(columns []Column, body [][]string) ([]Row, error) {
	rows := make([]Row, 0, len(body))
	for i, cells := range body {
		row, err := BuildRow(columns, cells)
		if err != nil {
			return nil, fmt.Errorf("body row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BuildSummaryRow builds the footer summary row and stamps the generation date
// under ReservedDateKey, replacing any footer value stored there.
func BuildSummaryRow(columns []Column, footer []string, generatedOn string) (Row, error) {
	row, err := BuildRow(columns, footer)
	if err != nil {
		return nil, fmt.Errorf("footer row: %w", err)
	}
	row[ReservedDateKey] = generatedOn
	return row, nil
}

// BuildTable converts a source table into a report table. When the source has
// a footer, the summary row is appended last.
func BuildTable(src SourceTable, generatedOn string) (Table, error) {
	columns := BuildColumns(src.Header)
	rows, err := BuildRows(columns, src.Body)
	if err != nil {
		return Table{}, err
	}
	if src.HasFooter {
		summary, err := BuildSummaryRow(columns, src.Footer, generatedOn)
		if err != nil {
			return Table{}, err
		}
		rows = append(rows, summary)
	}
	return Table{Columns: columns, Rows: rows}, nil
}

// BuildFixedTable fills a table with a fixed column schema from body rows.
// Header and footer of the source are ignored.
func BuildFixedTable(columns []Column, src SourceTable) (Table, error) {
	rows, err := BuildRows(columns, src.Body)
	if err != nil {
		return Table{}, err
	}
	return Table{Columns: columns, Rows: rows}, nil
}
