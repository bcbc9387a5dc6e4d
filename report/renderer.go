package report

import (
	"fmt"
	"io"
	"sync"
)

// RGB is a color triple in the 0-255 range.
type RGB [3]int

// TableStyle controls how a renderer lays out a table.
type TableStyle struct {
	FontSize      float64
	CellPadding   float64
	LineColor     RGB
	HeadFill      RGB
	HeadText      RGB
	HeadBold      bool
	AlternateFill RGB
}

// DefaultTableStyle returns the report table styling.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		FontSize:      10,
		CellPadding:   3,
		LineColor:     RGB{200, 200, 200},
		HeadFill:      RGB{41, 128, 185},
		HeadText:      RGB{255, 255, 255},
		HeadBold:      true,
		AlternateFill: RGB{245, 245, 245},
	}
}

// TableSpec is the input of Renderer.Table. Rows are already aligned to Columns.
type TableSpec struct {
	Columns []Column
	Rows    [][]string
	StartY  float64
	Style   TableStyle
}

// Renderer is the document backend: page creation, text placement, tabular
// layout and save. Pages are 1-indexed.
type Renderer interface {
	AddPage()
	SetFontSize(size float64)
	Text(text string, x, y float64)
	TextCentered(text string, y float64)
	Table(spec TableSpec) error
	PageCount() int
	SetPage(n int)
	PageSize() (width, height float64)
	Save(w io.Writer) error
	Extension() string
	ContentType() string
}

// RendererFactory creates a fresh Renderer for one document.
type RendererFactory func() (Renderer, error)

// RendererProvider resolves the renderer for a format. A nil Renderer with a
// nil error means no backend is available.
type RendererProvider interface {
	Renderer(format Format) (Renderer, error)
}

// RendererRegistry stores renderer factories by format.
type RendererRegistry struct {
	mu        sync.RWMutex
	factories map[Format]RendererFactory
}

// NewRendererRegistry creates a registry.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{factories: make(map[Format]RendererFactory)}
}

// Register adds a renderer factory for a format.
func (r *RendererRegistry) Register(format Format, factory RendererFactory) error {
	if format == "" {
		return NewError(KindValidation, "renderer format is required", nil)
	}
	if factory == nil {
		return NewError(KindValidation, "renderer factory is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[format]; exists {
		return NewError(KindValidation, fmt.Sprintf("renderer for %q already registered", format), nil)
	}
	r.factories[format] = factory
	return nil
}

// Renderer builds a renderer for format, or returns nil when none is registered.
func (r *RendererRegistry) Renderer(format Format) (Renderer, error) {
	if r == nil {
		return nil, nil
	}
	r.mu.RLock()
	factory, ok := r.factories[format]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return factory()
}
