package report

import "testing"

func TestBuildColumns_FirstLineOnly(t *testing.T) {
	columns := BuildColumns([]string{"  User  ", "Download\n(MB)", "Upload \n  total in MB", ""})

	want := []string{"User", "Download", "Upload", ""}
	if len(columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(columns))
	}
	for i, col := range columns {
		if col.Header != want[i] || col.Key != want[i] {
			t.Fatalf("column %d: expected %q, got header=%q key=%q", i, want[i], col.Header, col.Key)
		}
	}
}

func TestBuildTable_RowCount(t *testing.T) {
	src := SourceTable{
		Header: []string{"User", "Total"},
		Body: [][]string{
			{"alice", "10"},
			{"bob", "20"},
			{"carol", "30"},
		},
	}

	table, err := BuildTable(src, "05/06/2024")
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}

	src.Footer = []string{"Total", "60"}
	src.HasFooter = true
	table, err = BuildTable(src, "05/06/2024")
	if err != nil {
		t.Fatalf("build table with footer: %v", err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("expected 4 rows with footer, got %d", len(table.Rows))
	}
}

func TestBuildTable_FooterSummaryIsLastWithDate(t *testing.T) {
	src := SourceTable{
		Header:    []string{"User", "Total\n(MB)"},
		Body:      [][]string{{"alice", " 10 "}},
		Footer:    []string{" Total ", "10"},
		HasFooter: true,
	}

	table, err := BuildTable(src, "05/06/2024")
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	last := table.Rows[len(table.Rows)-1]
	if last.Value(ReservedDateKey) != "05/06/2024" {
		t.Fatalf("expected generation date in summary row, got %q", last.Value(ReservedDateKey))
	}
	if last.Value("User") != "Total" || last.Value("Total") != "10" {
		t.Fatalf("unexpected summary row: %#v", last)
	}
	if table.Rows[0].Value("Total") != "10" {
		t.Fatalf("expected trimmed body value, got %q", table.Rows[0].Value("Total"))
	}
}

func TestBuildRow_PositionalShortRow(t *testing.T) {
	columns := BuildColumns([]string{"A", "B", "C"})

	row, err := BuildRow(columns, []string{"1", "2"})
	if err != nil {
		t.Fatalf("build row: %v", err)
	}
	if row.Value("A") != "1" || row.Value("B") != "2" {
		t.Fatalf("unexpected row: %#v", row)
	}
	if row.Value("C") != "" {
		t.Fatalf("expected missing key to read as empty, got %q", row.Value("C"))
	}

	table := Table{Columns: columns, Rows: []Row{row}}
	values := table.Values(row)
	if len(values) != 3 || values[2] != "" {
		t.Fatalf("expected three aligned values, got %#v", values)
	}
}

func TestBuildRow_PositionalNotByName(t *testing.T) {
	columns := BuildColumns([]string{"Name", "Value"})

	row, err := BuildRow(columns, []string{"Value", "Name"})
	if err != nil {
		t.Fatalf("build row: %v", err)
	}
	if row.Value("Name") != "Value" || row.Value("Value") != "Name" {
		t.Fatalf("expected positional assignment, got %#v", row)
	}
}

func TestBuildRow_TooManyCells(t *testing.T) {
	columns := BuildColumns([]string{"A"})
	_, err := BuildRow(columns, []string{"1", "2"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", KindFromError(err))
	}
}

func TestBuildFixedTable_IgnoresSourceHeader(t *testing.T) {
	columns := ResolveCatalog("pt-BR").ConsumptionColumns()
	src := SourceTable{
		Header: []string{"Dia", "Baixado", "Enviado", "Soma"},
		Body:   [][]string{{"01/06/2024", "100", "20", "120"}},
	}

	table, err := BuildFixedTable(columns, src)
	if err != nil {
		t.Fatalf("build fixed table: %v", err)
	}
	row := table.Rows[0]
	if row.Value(ReservedDateKey) != "01/06/2024" || row.Value("Total (MB)") != "120" {
		t.Fatalf("unexpected row: %#v", row)
	}
}
