package htmldoc

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-report/report"
)

const usagePage = `<!DOCTYPE html>
<html>
<body>
  <h1>Relatório</h1>
  <table id="usage-table" class="table">
    <thead>
      <tr>
        <th>Usuário</th>
        <th>Download<br><small>(MB)</small></th>
        <th>Upload <span class="d-block">(MB)</span></th>
      </tr>
    </thead>
    <tbody>
      <tr><td> ana </td><td>10</td><td>2</td></tr>
      <tr><td>bruno</td><td>7<span class="d-none">hidden</span></td><td>1</td></tr>
    </tbody>
    <tfoot>
      <tr><th>Total</th><th>17</th><th>3</th></tr>
    </tfoot>
  </table>
  <div id="consumption-by-date-table">
    <table>
      <tbody>
        <tr><td>01/06/2024</td><td>1</td><td>2</td><td>3</td></tr>
      </tbody>
    </table>
  </div>
  <script>var x = "<td>nope</td>";</script>
</body>
</html>`

func openUsage(t *testing.T) *Source {
	t.Helper()
	src, err := OpenReader(strings.NewReader(usagePage))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	return src
}

func TestSource_ReadsSections(t *testing.T) {
	src := openUsage(t)

	table, ok, err := src.Table(context.Background(), "usage-table")
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if !ok {
		t.Fatalf("expected table to be found")
	}

	wantHeader := []string{"Usuário", "Download\n(MB)", "Upload\n(MB)"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Fatalf("header = %q, want %q", table.Header, wantHeader)
	}
	wantBody := [][]string{{"ana", "10", "2"}, {"bruno", "7", "1"}}
	if !reflect.DeepEqual(table.Body, wantBody) {
		t.Fatalf("body = %q, want %q", table.Body, wantBody)
	}
	if !table.HasFooter || !reflect.DeepEqual(table.Footer, []string{"Total", "17", "3"}) {
		t.Fatalf("unexpected footer %q (has=%v)", table.Footer, table.HasFooter)
	}
}

func TestSource_ColumnsFromHeaderFirstLine(t *testing.T) {
	src := openUsage(t)
	table, _, err := src.Table(context.Background(), "usage-table")
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	columns := report.BuildColumns(table.Header)
	keys := []string{columns[0].Key, columns[1].Key, columns[2].Key}
	if !reflect.DeepEqual(keys, []string{"Usuário", "Download", "Upload"}) {
		t.Fatalf("unexpected keys %q", keys)
	}
}

func TestSource_NonTableContainer(t *testing.T) {
	src := openUsage(t)
	table, ok, err := src.Table(context.Background(), report.ConsumptionTableID)
	if err != nil || !ok {
		t.Fatalf("expected container to be found, ok=%v err=%v", ok, err)
	}
	if len(table.Header) != 0 || table.HasFooter {
		t.Fatalf("expected body only, got %+v", table)
	}
	if len(table.Body) != 1 || table.Body[0][3] != "3" {
		t.Fatalf("unexpected body %q", table.Body)
	}
}

func TestSource_NestedTableRowsOnce(t *testing.T) {
	page := `<table id="outer"><tbody>
<tr><td>a</td><td><table><tbody><tr><td>x</td></tr></tbody></table></td></tr>
<tr><td>b</td><td>2</td></tr>
</tbody></table>`
	src, err := OpenReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}

	table, ok, err := src.Table(context.Background(), "outer")
	if err != nil || !ok {
		t.Fatalf("table: ok=%v err=%v", ok, err)
	}
	if len(table.Body) != 3 {
		t.Fatalf("expected 3 rows in document order, got %d: %q", len(table.Body), table.Body)
	}
	if table.Body[0][0] != "a" || !reflect.DeepEqual(table.Body[1], []string{"x"}) || table.Body[2][0] != "b" {
		t.Fatalf("unexpected row order %q", table.Body)
	}
}

func TestSource_Missing(t *testing.T) {
	src := openUsage(t)
	if _, ok, err := src.Table(context.Background(), "nope"); ok || err != nil {
		t.Fatalf("expected not found, ok=%v err=%v", ok, err)
	}
	if _, ok, _ := src.Table(context.Background(), ""); ok {
		t.Fatalf("expected empty id not found")
	}
}

func TestSource_CanceledContext(t *testing.T) {
	src := openUsage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := src.Table(ctx, "usage-table"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(usagePage), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, ok, _ := src.Table(context.Background(), "usage-table"); !ok {
		t.Fatalf("expected table from file")
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestInnerText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "collapses whitespace", html: "<td>  a \n  b  </td>", want: "a b"},
		{name: "br breaks line", html: "<td>a<br>b</td>", want: "a\nb"},
		{name: "blocks break line", html: "<td><div>a</div>\n <div>b</div></td>", want: "a\nb"},
		{name: "inline stays on line", html: "<td><b>a</b> <i>b</i></td>", want: "a b"},
		{name: "hidden skipped", html: "<td>a<span hidden>x</span></td>", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := OpenReader(strings.NewReader("<table><tbody><tr>" + tt.html + "</tr></tbody></table>"))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			cells := findAll(src.doc, "td", nil)
			if len(cells) != 1 {
				t.Fatalf("expected one cell, got %d", len(cells))
			}
			if got := innerText(cells[0]); got != tt.want {
				t.Fatalf("innerText = %q, want %q", got, tt.want)
			}
		})
	}
}
