// Package htmldoc reads report tables out of a static HTML document.
//
// Cell text approximates the browser's rendered text: <br> and block-level
// elements (including elements styled with the "d-block" class) start a new
// line, whitespace runs collapse, and hidden elements are skipped.
package htmldoc

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-report/report"
)

// Source serves tables from a parsed HTML document.
type Source struct {
	doc *html.Node
}

var _ report.TableSource = (*Source)(nil)

// Open parses the HTML file at filename.
func Open(filename string) (*Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from r.
func OpenReader(r io.Reader) (*Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Source{doc: doc}, nil
}

// Table returns the table rooted at the element with the given id. The
// header comes from the th cells of the first "thead tr", the body from the td
// cells of every "tbody tr", and the footer from the th cells of the first
// "tfoot tr".
func (s *Source) Table(ctx context.Context, id string) (report.SourceTable, bool, error) {
	if err := ctx.Err(); err != nil {
		return report.SourceTable{}, false, err
	}
	if s == nil || s.doc == nil || id == "" {
		return report.SourceTable{}, false, nil
	}

	root := findByID(s.doc, id)
	if root == nil {
		return report.SourceTable{}, false, nil
	}

	table := report.SourceTable{}
	if tr := firstRow(root, "thead"); tr != nil {
		table.Header = cellTexts(tr, "th")
	}
	for _, tr := range sectionRows(root, "tbody") {
		table.Body = append(table.Body, cellTexts(tr, "td"))
	}
	if tr := firstRow(root, "tfoot"); tr != nil {
		table.Footer = cellTexts(tr, "th")
		table.HasFooter = true
	}
	return table, true, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string, out []*html.Node) []*html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == tag {
			out = append(out, c)
		}
		out = findAll(c, tag, out)
	}
	return out
}

// sectionRows returns every tr inside a section element, in document order.
// Rows of nested sections are listed once.
func sectionRows(root *html.Node, section string) []*html.Node {
	var rows []*html.Node
	seen := make(map[*html.Node]struct{})
	for _, sec := range findAll(root, section, nil) {
		for _, tr := range findAll(sec, "tr", nil) {
			if _, ok := seen[tr]; ok {
				continue
			}
			seen[tr] = struct{}{}
			rows = append(rows, tr)
		}
	}
	return rows
}

func firstRow(root *html.Node, section string) *html.Node {
	rows := sectionRows(root, section)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func cellTexts(tr *html.Node, tag string) []string {
	cells := findAll(tr, tag, nil)
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		out = append(out, innerText(cell))
	}
	return out
}

func attr(n *html.Node, key string) string {
	val, _ := lookupAttr(n, key)
	return val
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

type textBuilder struct {
	sb      strings.Builder
	pending bool
}

func innerText(n *html.Node) string {
	b := &textBuilder{}
	b.walk(n)

	lines := strings.Split(b.sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (b *textBuilder) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.text(n.Data)
		return
	case html.ElementNode:
		if skipped(n) {
			return
		}
		if n.Data == "br" {
			b.sb.WriteString("\n")
			b.pending = false
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n)
	if block {
		b.pending = true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
	if block {
		b.pending = true
	}
}

func (b *textBuilder) text(data string) {
	if strings.TrimSpace(data) == "" {
		if data != "" {
			b.sb.WriteString(" ")
		}
		return
	}
	if b.pending {
		if out := b.sb.String(); strings.TrimSpace(out) != "" && !strings.HasSuffix(strings.TrimRight(out, " \t"), "\n") {
			b.sb.WriteString("\n")
		}
		b.pending = false
	}
	if isSpace(data[0]) {
		b.sb.WriteString(" ")
	}
	b.sb.WriteString(strings.Join(strings.Fields(data), " "))
	if isSpace(data[len(data)-1]) {
		b.sb.WriteString(" ")
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipped(n *html.Node) bool {
	switch n.Data {
	case "script", "style", "noscript", "template":
		return true
	}
	if _, ok := lookupAttr(n, "hidden"); ok {
		return true
	}
	return hasClass(n, "d-none")
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isBlock(n *html.Node) bool {
	switch n.Data {
	case "div", "p", "ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "section", "article", "header", "footer", "table", "tr":
		return true
	}
	return hasClass(n, "d-block")
}
