// Package reportxlsx renders report documents as XLSX workbooks with excelize.
// Each report page becomes a worksheet; page footers become the printed sheet
// footer.
package reportxlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-report/report"
)

const (
	defaultSheetName  = "Sheet1"
	titleFontSize     = 16.0
	maxColumnWidth    = 60.0
	minColumnWidth    = 8.0
	a4WidthMM         = 210.0
	a4HeightMM        = 297.0
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetNameTemplate = "Page %d"
)

type sheetState struct {
	name    string
	nextRow int
	widths  map[int]float64
}

// Renderer writes report pages into an excelize workbook.
type Renderer struct {
	file     *excelize.File
	sheets   []*sheetState
	current  int
	fontSize float64
	styles   map[string]int
	err      error
}

// New creates an empty workbook renderer.
func New() *Renderer {
	return &Renderer{
		file:     excelize.NewFile(),
		fontSize: 10,
		styles:   make(map[string]int),
	}
}

// Factory returns a report.RendererFactory producing workbook renderers.
func Factory() report.RendererFactory {
	return func() (report.Renderer, error) {
		return New(), nil
	}
}

// AddPage starts a new worksheet.
func (r *Renderer) AddPage() {
	if r.err != nil {
		return
	}
	name := fmt.Sprintf(sheetNameTemplate, len(r.sheets)+1)
	if len(r.sheets) == 0 {
		r.setErr(r.file.SetSheetName(defaultSheetName, name))
	} else {
		_, err := r.file.NewSheet(name)
		r.setErr(err)
	}
	r.sheets = append(r.sheets, &sheetState{name: name, nextRow: 1, widths: make(map[int]float64)})
	r.current = len(r.sheets)
}

func (r *Renderer) SetFontSize(size float64) {
	r.fontSize = size
}

// Text appends text as a new row in the first column. Coordinates only order
// the output; worksheets have no absolute positioning.
func (r *Renderer) Text(text string, x, y float64) {
	_, _ = x, y
	sheet := r.sheet()
	if sheet == nil || r.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, sheet.nextRow)
	if err != nil {
		r.setErr(err)
		return
	}
	r.setErr(r.file.SetCellValue(sheet.name, cell, text))

	styleID, err := r.style(fmt.Sprintf("text-%v", r.fontSize), &excelize.Style{
		Font: &excelize.Font{Size: r.fontSize, Bold: r.fontSize >= titleFontSize},
	})
	if err != nil {
		r.setErr(err)
		return
	}
	r.setErr(r.file.SetCellStyle(sheet.name, cell, cell, styleID))
	sheet.nextRow++
}

// TextCentered sets the centered printed footer of the current sheet.
func (r *Renderer) TextCentered(text string, y float64) {
	_ = y
	sheet := r.sheet()
	if sheet == nil || r.err != nil {
		return
	}
	footer := "&C" + strings.ReplaceAll(text, "&", "&&")
	r.setErr(r.file.SetHeaderFooter(sheet.name, &excelize.HeaderFooterOptions{OddFooter: footer}))
}

// Table writes a header row and the body rows below any text already on the
// current sheet, leaving one blank row in between.
func (r *Renderer) Table(spec report.TableSpec) error {
	sheet := r.sheet()
	if sheet == nil {
		return fmt.Errorf("xlsx table: no page")
	}
	if r.err != nil {
		return r.err
	}
	if len(spec.Columns) == 0 {
		return nil
	}
	if sheet.nextRow > 1 {
		sheet.nextRow++
	}

	style := spec.Style
	border := borders(style.LineColor)
	headID, err := r.style("head", &excelize.Style{
		Font:   &excelize.Font{Bold: style.HeadBold, Color: hexColor(style.HeadText), Size: style.FontSize},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(style.HeadFill)}},
		Border: border,
	})
	if err != nil {
		return err
	}
	bodyID, err := r.style("body", &excelize.Style{
		Font:   &excelize.Font{Size: style.FontSize},
		Border: border,
	})
	if err != nil {
		return err
	}
	altID, err := r.style("alt", &excelize.Style{
		Font:   &excelize.Font{Size: style.FontSize},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(style.AlternateFill)}},
		Border: border,
	})
	if err != nil {
		return err
	}

	headers := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		headers[i] = col.Header
	}
	if err := r.writeRow(sheet, headers, len(spec.Columns), headID); err != nil {
		return err
	}
	for i, values := range spec.Rows {
		styleID := bodyID
		if i%2 == 1 {
			styleID = altID
		}
		if err := r.writeRow(sheet, values, len(spec.Columns), styleID); err != nil {
			return err
		}
	}

	for col, width := range sheet.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := r.file.SetColWidth(sheet.name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) PageCount() int {
	return len(r.sheets)
}

func (r *Renderer) SetPage(n int) {
	if n > 0 && n <= len(r.sheets) {
		r.current = n
	}
}

// PageSize reports A4 in millimetres, the printed size of each sheet.
func (r *Renderer) PageSize() (float64, float64) {
	return a4WidthMM, a4HeightMM
}

// Save writes the workbook.
func (r *Renderer) Save(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	defer func() {
		_ = r.file.Close()
	}()
	if len(r.sheets) > 0 {
		r.file.SetActiveSheet(0)
	}
	return r.file.Write(w)
}

func (r *Renderer) Extension() string {
	return string(report.FormatXLSX)
}

func (r *Renderer) ContentType() string {
	return xlsxContentType
}

func (r *Renderer) writeRow(sheet *sheetState, values []string, columns, styleID int) error {
	cells := make([]interface{}, columns)
	for i := range cells {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = value
		width := float64(len([]rune(value))) + 2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if width > sheet.widths[i+1] {
			sheet.widths[i+1] = width
		}
	}

	first, err := excelize.CoordinatesToCellName(1, sheet.nextRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, sheet.nextRow)
	if err != nil {
		return err
	}
	if err := r.file.SetSheetRow(sheet.name, first, &cells); err != nil {
		return err
	}
	if err := r.file.SetCellStyle(sheet.name, first, last, styleID); err != nil {
		return err
	}
	sheet.nextRow++
	return nil
}

func (r *Renderer) style(key string, style *excelize.Style) (int, error) {
	if id, ok := r.styles[key]; ok {
		return id, nil
	}
	id, err := r.file.NewStyle(style)
	if err != nil {
		return 0, err
	}
	r.styles[key] = id
	return id, nil
}

func (r *Renderer) sheet() *sheetState {
	if r.current < 1 || r.current > len(r.sheets) {
		return nil
	}
	return r.sheets[r.current-1]
}

func (r *Renderer) setErr(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

func hexColor(c report.RGB) string {
	return fmt.Sprintf("%02X%02X%02X", c[0], c[1], c[2])
}

func borders(c report.RGB) []excelize.Border {
	color := hexColor(c)
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}
