package report

import (
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/language"
)

// Catalog holds the localized labels and date convention of a locale. Label
// fields are pongo2 templates.
type Catalog struct {
	Tag                language.Tag
	DateLayout         string
	GeneratedOn        string
	PageFooter         string
	ConsumptionTitle   string
	ConsumptionHeaders [4]string
	Alerts             Alerts
}

// Alerts are the user-facing messages of each failure kind.
type Alerts struct {
	RendererUnavailable string
	TableNotFound       string
	RenderFailure       string
}

// Alert returns the message for an error kind.
func (a Alerts) Alert(kind ErrorKind) string {
	switch kind {
	case KindRendererUnavailable:
		return a.RendererUnavailable
	case KindTableNotFound:
		return a.TableNotFound
	default:
		return a.RenderFailure
	}
}

// DefaultLocale is used when a request names no locale or an unknown one.
var DefaultLocale = language.BrazilianPortuguese

var catalogs = []Catalog{
	{
		Tag:                language.BrazilianPortuguese,
		DateLayout:         "02/01/2006",
		GeneratedOn:        "Gerado em: {{ date }}",
		PageFooter:         "Página {{ page }} de {{ total }} - {{ product }}",
		ConsumptionTitle:   "Consumo por Data",
		ConsumptionHeaders: [4]string{"Data", "Download (MB)", "Upload (MB)", "Total (MB)"},
		Alerts: Alerts{
			RendererUnavailable: "Erro ao gerar o relatório. A biblioteca necessária não está disponível.",
			TableNotFound:       "Erro ao gerar o relatório. Tabela não encontrada.",
			RenderFailure:       "Ocorreu um erro ao gerar o relatório. Por favor, tente novamente.",
		},
	},
	{
		Tag:                language.AmericanEnglish,
		DateLayout:         "01/02/2006",
		GeneratedOn:        "Generated on: {{ date }}",
		PageFooter:         "Page {{ page }} of {{ total }} - {{ product }}",
		ConsumptionTitle:   "Consumption by Date",
		ConsumptionHeaders: [4]string{"Date", "Download (MB)", "Upload (MB)", "Total (MB)"},
		Alerts: Alerts{
			RendererUnavailable: "Could not generate the report. The required renderer is not available.",
			TableNotFound:       "Could not generate the report. Table not found.",
			RenderFailure:       "An error occurred while generating the report. Please try again.",
		},
	},
	{
		Tag:                language.BritishEnglish,
		DateLayout:         "02/01/2006",
		GeneratedOn:        "Generated on: {{ date }}",
		PageFooter:         "Page {{ page }} of {{ total }} - {{ product }}",
		ConsumptionTitle:   "Consumption by Date",
		ConsumptionHeaders: [4]string{"Date", "Download (MB)", "Upload (MB)", "Total (MB)"},
		Alerts: Alerts{
			RendererUnavailable: "Could not generate the report. The required renderer is not available.",
			TableNotFound:       "Could not generate the report. Table not found.",
			RenderFailure:       "An error occurred while generating the report. Please try again.",
		},
	},
	{
		Tag:                language.Spanish,
		DateLayout:         "02/01/2006",
		GeneratedOn:        "Generado el: {{ date }}",
		PageFooter:         "Página {{ page }} de {{ total }} - {{ product }}",
		ConsumptionTitle:   "Consumo por Fecha",
		ConsumptionHeaders: [4]string{"Fecha", "Descarga (MB)", "Subida (MB)", "Total (MB)"},
		Alerts: Alerts{
			RendererUnavailable: "Error al generar el informe. El renderizador necesario no está disponible.",
			TableNotFound:       "Error al generar el informe. Tabla no encontrada.",
			RenderFailure:       "Ocurrió un error al generar el informe. Por favor, inténtelo de nuevo.",
		},
	},
}

var catalogMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(catalogs))
	for i, c := range catalogs {
		tags[i] = c.Tag
	}
	return language.NewMatcher(tags)
}()

// ResolveCatalog picks the closest supported catalog for locale.
func ResolveCatalog(locale string) Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return catalogs[0]
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return catalogs[0]
	}
	_, idx, confidence := catalogMatcher.Match(tag)
	if confidence == language.No {
		return catalogs[0]
	}
	return catalogs[idx]
}

// FormatDate renders t with the catalog's date convention. Every catalog but
// en-US is day-first.
func (c Catalog) FormatDate(t time.Time) string {
	layout := c.DateLayout
	if layout == "" {
		layout = "02/01/2006"
	}
	return t.Format(layout)
}

// ConsumptionColumns returns the fixed consumption-by-date schema. Keys stay
// stable across locales; only headers are translated.
func (c Catalog) ConsumptionColumns() []Column {
	keys := [4]string{ReservedDateKey, "Download (MB)", "Upload (MB)", "Total (MB)"}
	columns := make([]Column, len(keys))
	for i, key := range keys {
		header := c.ConsumptionHeaders[i]
		if header == "" {
			header = key
		}
		columns[i] = Column{Header: header, Key: key}
	}
	return columns
}

// GeneratedOnLabel renders the generation stamp for date.
func (c Catalog) GeneratedOnLabel(date string) (string, error) {
	return renderLabel(c.GeneratedOn, pongo2.Context{"date": date})
}

// PageFooterLabel renders the footer of page out of total.
func (c Catalog) PageFooterLabel(page, total int, product string) (string, error) {
	return renderLabel(c.PageFooter, pongo2.Context{
		"page":    page,
		"total":   total,
		"product": product,
	})
}

// renderLabel renders tpl as plain text; labels never carry markup.
func renderLabel(tpl string, ctx pongo2.Context) (string, error) {
	compiled, err := pongo2.FromString("{% autoescape off %}" + tpl + "{% endautoescape %}")
	if err != nil {
		return "", err
	}
	return compiled.Execute(ctx)
}
