package report

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestResolveCatalog(t *testing.T) {
	cases := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.BrazilianPortuguese},
		{"pt-BR", language.BrazilianPortuguese},
		{"en-US", language.AmericanEnglish},
		{"en-GB", language.BritishEnglish},
		{"es-AR", language.Spanish},
		{"not a locale!", language.BrazilianPortuguese},
	}

	for _, tc := range cases {
		got := ResolveCatalog(tc.locale)
		if got.Tag != tc.want {
			t.Fatalf("ResolveCatalog(%q) = %s, want %s", tc.locale, got.Tag, tc.want)
		}
	}
}

func TestCatalog_FormatDate(t *testing.T) {
	day := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)

	if got := ResolveCatalog("pt-BR").FormatDate(day); got != "05/06/2024" {
		t.Fatalf("expected day/month/year, got %q", got)
	}
	if got := ResolveCatalog("en-US").FormatDate(day); got != "06/05/2024" {
		t.Fatalf("expected month/day/year, got %q", got)
	}
}

func TestCatalog_Labels(t *testing.T) {
	catalog := ResolveCatalog("pt-BR")

	stamp, err := catalog.GeneratedOnLabel("05/06/2024")
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if stamp != "Gerado em: 05/06/2024" {
		t.Fatalf("unexpected stamp %q", stamp)
	}

	footer, err := catalog.PageFooterLabel(1, 2, "Flcomm Manager")
	if err != nil {
		t.Fatalf("footer: %v", err)
	}
	if footer != "Página 1 de 2 - Flcomm Manager" {
		t.Fatalf("unexpected footer %q", footer)
	}
}

func TestCatalog_ConsumptionColumnsKeepKeys(t *testing.T) {
	columns := ResolveCatalog("en-US").ConsumptionColumns()
	if len(columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(columns))
	}
	if columns[0].Header != "Date" || columns[0].Key != ReservedDateKey {
		t.Fatalf("unexpected date column %#v", columns[0])
	}
	if columns[3].Key != "Total (MB)" {
		t.Fatalf("unexpected total column %#v", columns[3])
	}
}

func TestCatalog_LabelsArePlainText(t *testing.T) {
	product := "R&D <Ops> 'Tools' \"x\""
	for _, locale := range []string{"pt-BR", "en-US", "en-GB", "es"} {
		catalog := ResolveCatalog(locale)

		footer, err := catalog.PageFooterLabel(1, 2, product)
		if err != nil {
			t.Fatalf("%s footer: %v", locale, err)
		}
		if !strings.HasSuffix(footer, " - "+product) {
			t.Fatalf("%s: expected product verbatim, got %q", locale, footer)
		}

		stamp, err := catalog.GeneratedOnLabel("<05/06/2024>")
		if err != nil {
			t.Fatalf("%s stamp: %v", locale, err)
		}
		if !strings.HasSuffix(stamp, "<05/06/2024>") {
			t.Fatalf("%s: expected date verbatim, got %q", locale, stamp)
		}
	}
}

func TestCatalog_AlertsNameNoFormat(t *testing.T) {
	for _, c := range catalogs {
		for _, kind := range []ErrorKind{KindRendererUnavailable, KindTableNotFound, KindRenderFailure} {
			msg := c.Alerts.Alert(kind)
			if msg == "" || strings.Contains(msg, "PDF") || strings.Contains(msg, "XLSX") {
				t.Fatalf("%s %s: unexpected alert %q", c.Tag, kind, msg)
			}
		}
	}
}
