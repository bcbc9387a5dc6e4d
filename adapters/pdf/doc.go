// Package reportpdf renders report documents to PDF with go-pdf/fpdf.
//
// Renderer implements report.Renderer: text placement, a paginating table
// layout that repeats the header row on every page, page selection for footer
// stamping, and output to any io.Writer. Core fonts are used with a cp1252
// translator so accented labels render correctly.
package reportpdf
