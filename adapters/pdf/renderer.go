package reportpdf

import (
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-report/report"
)

const (
	defaultFontFamily = "Helvetica"
	defaultFontSize   = 10.0
	defaultMarginX    = 14.0
	defaultMarginY    = 14.0
	lineHeightFactor  = 1.15
	borderWidth       = 0.1
)

// Options configures a PDF renderer.
type Options struct {
	Orientation string
	Unit        string
	Size        string
	FontFamily  string
	MarginX     float64
	MarginY     float64
	Title       string
	Creator     string

	// DisableCompression leaves page streams readable, mostly for tests.
	DisableCompression bool
}

// DefaultOptions returns portrait A4 in millimetres.
func DefaultOptions() Options {
	return Options{
		Orientation: "P",
		Unit:        "mm",
		Size:        "A4",
		FontFamily:  defaultFontFamily,
		MarginX:     defaultMarginX,
		MarginY:     defaultMarginY,
	}
}

// Renderer draws report pages with fpdf.
type Renderer struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	opts     Options
	fontSize float64
}

// New creates a PDF renderer. Zero option fields take their defaults.
func New(opts Options) *Renderer {
	opts = mergeOptions(DefaultOptions(), opts)

	pdf := fpdf.New(opts.Orientation, opts.Unit, opts.Size, "")
	pdf.SetMargins(opts.MarginX, opts.MarginY, opts.MarginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(opts.FontFamily, "", defaultFontSize)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	if opts.DisableCompression {
		pdf.SetCompression(false)
	}

	return &Renderer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		opts:     opts,
		fontSize: defaultFontSize,
	}
}

// Factory returns a report.RendererFactory producing renderers with opts.
func Factory(opts Options) report.RendererFactory {
	return func() (report.Renderer, error) {
		return New(opts), nil
	}
}

func (r *Renderer) AddPage() {
	r.pdf.AddPage()
	r.pdf.SetFont(r.opts.FontFamily, "", r.fontSize)
}

func (r *Renderer) SetFontSize(size float64) {
	r.fontSize = size
	r.pdf.SetFontSize(size)
}

// Text writes text with its baseline at y.
func (r *Renderer) Text(text string, x, y float64) {
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Text(x, y, r.tr(text))
}

// TextCentered writes text horizontally centered with its baseline at y.
func (r *Renderer) TextCentered(text string, y float64) {
	encoded := r.tr(text)
	width, _ := r.pdf.GetPageSize()
	x := (width - r.pdf.GetStringWidth(encoded)) / 2
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Text(x, y, encoded)
}

// Table lays out spec starting at spec.StartY on the current page. Rows that
// do not fit open a new page, start at the same offset, and repeat the header.
func (r *Renderer) Table(spec report.TableSpec) error {
	if len(spec.Columns) == 0 {
		return r.pdf.Error()
	}

	style := spec.Style
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	previousSize := r.fontSize
	r.pdf.SetFontSize(style.FontSize)
	defer func() {
		r.pdf.SetFont(r.opts.FontFamily, "", previousSize)
	}()

	padding := r.pdf.PointConvert(style.CellPadding)
	lineHeight := r.pdf.PointConvert(style.FontSize) * lineHeightFactor
	widths := r.columnWidths(spec, padding)

	_, pageHeight := r.pdf.GetPageSize()
	bottom := pageHeight - r.opts.MarginY - lineHeight

	r.pdf.SetLineWidth(borderWidth)
	r.pdf.SetDrawColor(style.LineColor[0], style.LineColor[1], style.LineColor[2])

	headers := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		headers[i] = col.Header
	}

	y := spec.StartY
	y = r.drawRow(headers, widths, y, padding, lineHeight, rowStyle{
		fill:     &style.HeadFill,
		text:     style.HeadText,
		bold:     style.HeadBold,
		fontSize: style.FontSize,
	})

	for i, values := range spec.Rows {
		height := r.rowHeight(values, widths, padding, lineHeight)
		if y+height > bottom {
			r.AddPage()
			r.pdf.SetFontSize(style.FontSize)
			r.pdf.SetLineWidth(borderWidth)
			r.pdf.SetDrawColor(style.LineColor[0], style.LineColor[1], style.LineColor[2])
			y = r.drawRow(headers, widths, spec.StartY, padding, lineHeight, rowStyle{
				fill:     &style.HeadFill,
				text:     style.HeadText,
				bold:     style.HeadBold,
				fontSize: style.FontSize,
			})
		}

		body := rowStyle{fontSize: style.FontSize}
		if i%2 == 1 {
			body.fill = &style.AlternateFill
		}
		y = r.drawRow(values, widths, y, padding, lineHeight, body)
	}

	return r.pdf.Error()
}

func (r *Renderer) PageCount() int {
	return r.pdf.PageCount()
}

func (r *Renderer) SetPage(n int) {
	r.pdf.SetPage(n)
}

func (r *Renderer) PageSize() (float64, float64) {
	return r.pdf.GetPageSize()
}

// Save writes the finished PDF. The renderer cannot be drawn on afterwards.
func (r *Renderer) Save(w io.Writer) error {
	if err := r.pdf.Error(); err != nil {
		return err
	}
	return r.pdf.Output(w)
}

func (r *Renderer) Extension() string {
	return string(report.FormatPDF)
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

type rowStyle struct {
	fill     *report.RGB
	text     report.RGB
	bold     bool
	fontSize float64
}

func (r *Renderer) drawRow(values []string, widths []float64, y, padding, lineHeight float64, style rowStyle) float64 {
	fontStyle := ""
	if style.bold {
		fontStyle = "B"
	}
	r.pdf.SetFont(r.opts.FontFamily, fontStyle, style.fontSize)

	height := r.rowHeight(values, widths, padding, lineHeight)
	drawStyle := "D"
	if style.fill != nil {
		r.pdf.SetFillColor(style.fill[0], style.fill[1], style.fill[2])
		drawStyle = "FD"
	}
	r.pdf.SetTextColor(style.text[0], style.text[1], style.text[2])

	x := r.opts.MarginX
	for i, width := range widths {
		r.pdf.Rect(x, y, width, height, drawStyle)
		value := ""
		if i < len(values) {
			value = values[i]
		}
		for j, line := range r.wrap(value, width-2*padding) {
			r.pdf.SetXY(x+padding, y+padding+float64(j)*lineHeight)
			r.pdf.CellFormat(width-2*padding, lineHeight, line, "", 0, "L", false, 0, "")
		}
		x += width
	}

	r.pdf.SetFont(r.opts.FontFamily, "", style.fontSize)
	return y + height
}

func (r *Renderer) rowHeight(values []string, widths []float64, padding, lineHeight float64) float64 {
	maxLines := 1
	for i, width := range widths {
		if i >= len(values) {
			break
		}
		lines := len(r.wrap(values[i], width-2*padding))
		if lines > maxLines {
			maxLines = lines
		}
	}
	return float64(maxLines)*lineHeight + 2*padding
}

// wrap splits value into cp1252-encoded lines that fit width.
func (r *Renderer) wrap(value string, width float64) []string {
	chunks := r.pdf.SplitLines([]byte(r.tr(value)), width)
	lines := make([]string, len(chunks))
	for i, chunk := range chunks {
		lines[i] = string(chunk)
	}
	return lines
}

// columnWidths sizes columns by their widest content and scales them to span
// the printable width.
func (r *Renderer) columnWidths(spec report.TableSpec, padding float64) []float64 {
	pageWidth, _ := r.pdf.GetPageSize()
	available := pageWidth - 2*r.opts.MarginX

	natural := make([]float64, len(spec.Columns))
	total := 0.0
	for i, col := range spec.Columns {
		r.pdf.SetFontStyle("B")
		widest := r.pdf.GetStringWidth(r.tr(col.Header))
		r.pdf.SetFontStyle("")
		for _, values := range spec.Rows {
			if i < len(values) {
				widest = math.Max(widest, r.pdf.GetStringWidth(r.tr(values[i])))
			}
		}
		natural[i] = widest + 2*padding
		total += natural[i]
	}

	widths := make([]float64, len(natural))
	if total <= 0 {
		for i := range widths {
			widths[i] = available / float64(len(widths))
		}
		return widths
	}
	for i, width := range natural {
		widths[i] = width / total * available
	}
	return widths
}

func mergeOptions(base, override Options) Options {
	if override.Orientation != "" {
		base.Orientation = override.Orientation
	}
	if override.Unit != "" {
		base.Unit = override.Unit
	}
	if override.Size != "" {
		base.Size = override.Size
	}
	if override.FontFamily != "" {
		base.FontFamily = override.FontFamily
	}
	if override.MarginX > 0 {
		base.MarginX = override.MarginX
	}
	if override.MarginY > 0 {
		base.MarginY = override.MarginY
	}
	base.Title = override.Title
	base.Creator = override.Creator
	base.DisableCompression = override.DisableCompression
	return base
}
