package report

import (
	"fmt"
)

const (
	pageMarginX          = 14.0
	titleY               = 22.0
	stampY               = 30.0
	footerOffset         = 10.0
	footerFontSize       = 10.0
	stampFontSize        = 11.0
	mainTitleFontSize    = 18.0
	sectionTitleFontSize = 16.0
	mainTableStartY      = 40.0
	sectionTableStartY   = 30.0
)

// MainPage builds the first report page.
func MainPage(title, stamp string, table Table) Page {
	return Page{
		Title:         title,
		TitleFontSize: mainTitleFontSize,
		Stamp:         stamp,
		Table:         table,
		StartY:        mainTableStartY,
	}
}

// SectionPage builds a follow-up page without a generation stamp.
func SectionPage(title string, table Table) Page {
	return Page{
		Title:         title,
		TitleFontSize: sectionTitleFontSize,
		Table:         table,
		StartY:        sectionTableStartY,
	}
}

// RenderDocument draws doc on r and stamps every resulting page, including
// pages the renderer added while paginating a long table, with a centered
// footer.
func RenderDocument(r Renderer, doc Document, catalog Catalog, product string) error {
	if r == nil {
		return NewError(KindRendererUnavailable, "renderer is nil", nil)
	}
	style := DefaultTableStyle()

	for i, page := range doc.Pages {
		r.AddPage()

		r.SetFontSize(page.TitleFontSize)
		r.Text(page.Title, pageMarginX, titleY)

		if page.Stamp != "" {
			r.SetFontSize(stampFontSize)
			r.Text(page.Stamp, pageMarginX, stampY)
		}

		spec := TableSpec{
			Columns: page.Table.Columns,
			Rows:    make([][]string, 0, len(page.Table.Rows)),
			StartY:  page.StartY,
			Style:   style,
		}
		for _, row := range page.Table.Rows {
			spec.Rows = append(spec.Rows, page.Table.Values(row))
		}
		if err := r.Table(spec); err != nil {
			return fmt.Errorf("page %d table: %w", i+1, err)
		}
	}

	return StampFooters(r, catalog, product)
}

// StampFooters writes "page i of N" footers on every page of r.
func StampFooters(r Renderer, catalog Catalog, product string) error {
	total := r.PageCount()
	for i := 1; i <= total; i++ {
		r.SetPage(i)
		_, height := r.PageSize()
		label, err := catalog.PageFooterLabel(i, total, product)
		if err != nil {
			return fmt.Errorf("footer label: %w", err)
		}
		r.SetFontSize(footerFontSize)
		r.TextCentered(label, height-footerOffset)
	}
	return nil
}
