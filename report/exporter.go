package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exporter reads a table from a TableSource and turns it into a saved report.
// An empty ConsumptionTableID disables the consumption-by-date page.
type Exporter struct {
	Source             TableSource
	Renderers          RendererProvider
	Saver              Saver
	Notifier           Notifier
	Logger             Logger
	ProductName        string
	DefaultFormat      Format
	DefaultLocale      string
	ConsumptionTableID string
	Now                func() time.Time
	IDGenerator        func() string
}

// NewExporter creates an exporter with defaults applied.
func NewExporter(source TableSource, renderers RendererProvider, saver Saver) *Exporter {
	return &Exporter{
		Source:             source,
		Renderers:          renderers,
		Saver:              saver,
		Notifier:           NopNotifier{},
		Logger:             NopLogger{},
		ProductName:        DefaultProductName,
		DefaultFormat:      FormatPDF,
		ConsumptionTableID: ConsumptionTableID,
		Now:                time.Now,
		IDGenerator:        uuid.NewString,
	}
}

// ExportReport composes the report for req and saves it. Failures are logged,
// alerted once, and returned; nothing is saved on failure.
func (e *Exporter) ExportReport(ctx context.Context, req Request) (Result, error) {
	if e == nil {
		return Result{}, NewError(KindRenderFailure, "exporter is nil", nil)
	}
	e.applyDefaults()

	format := Format(strings.ToLower(strings.TrimSpace(string(req.Format))))
	if format == "" {
		format = e.DefaultFormat
	}
	locale := req.Locale
	if locale == "" {
		locale = e.DefaultLocale
	}
	catalog := ResolveCatalog(locale)

	renderer, err := e.resolveRenderer(format)
	if err != nil {
		return Result{}, e.fail(catalog, err)
	}

	if e.Source == nil {
		return Result{}, e.fail(catalog, NewError(KindTableNotFound, "table source is not configured", nil))
	}
	src, ok, err := e.Source.Table(ctx, req.TableID)
	if err != nil {
		return Result{}, e.fail(catalog, NewError(KindRenderFailure, fmt.Sprintf("reading table %q", req.TableID), err))
	}
	if !ok {
		return Result{}, e.fail(catalog, NewError(KindTableNotFound, fmt.Sprintf("table %q not found", req.TableID), nil))
	}

	result, err := e.render(ctx, renderer, catalog, format, req, src)
	if err != nil {
		return Result{}, e.fail(catalog, NewError(KindRenderFailure, "report generation failed", err))
	}

	e.Logger.Infof("report %s saved as %s (%d pages, %d rows, %d bytes)", result.ID, result.Filename, result.Pages, result.Rows, result.Bytes)
	return result, nil
}

func (e *Exporter) render(ctx context.Context, renderer Renderer, catalog Catalog, format Format, req Request, src SourceTable) (Result, error) {
	now := e.Now()
	generatedOn := catalog.FormatDate(now)

	table, err := BuildTable(src, generatedOn)
	if err != nil {
		return Result{}, err
	}
	stamp, err := catalog.GeneratedOnLabel(generatedOn)
	if err != nil {
		return Result{}, err
	}

	doc := Document{
		Title:       req.Title,
		GeneratedOn: generatedOn,
		Pages:       []Page{MainPage(req.Title, stamp, table)},
	}

	if e.ConsumptionTableID != "" {
		consumption, ok, err := e.Source.Table(ctx, e.ConsumptionTableID)
		if err != nil {
			return Result{}, err
		}
		if ok {
			fixed, err := BuildFixedTable(catalog.ConsumptionColumns(), consumption)
			if err != nil {
				return Result{}, fmt.Errorf("consumption table: %w", err)
			}
			doc.Pages = append(doc.Pages, SectionPage(catalog.ConsumptionTitle, fixed))
		}
	}

	if err := RenderDocument(renderer, doc, catalog, e.ProductName); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := renderer.Save(&buf); err != nil {
		return Result{}, err
	}

	if e.Saver == nil {
		return Result{}, NewError(KindValidation, "saver is not configured", nil)
	}
	filename := BuildFilename(req.Title, generatedOn, renderer.Extension())
	ref, err := e.Saver.Save(ctx, filename, bytes.NewReader(buf.Bytes()), ArtifactMeta{
		Filename:    filename,
		ContentType: renderer.ContentType(),
		CreatedAt:   now,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		ID:       e.IDGenerator(),
		Format:   format,
		Filename: filename,
		Pages:    renderer.PageCount(),
		Rows:     doc.RowCount(),
		Bytes:    int64(buf.Len()),
		Artifact: ref,
	}, nil
}

func (e *Exporter) resolveRenderer(format Format) (Renderer, error) {
	if e.Renderers == nil {
		return nil, NewError(KindRendererUnavailable, "no renderer provider configured", nil)
	}
	renderer, err := e.Renderers.Renderer(format)
	if err != nil {
		return nil, NewError(KindRendererUnavailable, fmt.Sprintf("renderer for %q failed to start", format), err)
	}
	if renderer == nil {
		return nil, NewError(KindRendererUnavailable, fmt.Sprintf("renderer for %q is not available", format), nil)
	}
	return renderer, nil
}

func (e *Exporter) fail(catalog Catalog, err error) error {
	kind := KindFromError(err)
	e.Logger.Errorf("report export failed [%s]: %v", kind, err)
	e.Notifier.Alert(catalog.Alerts.Alert(kind))
	return err
}

func (e *Exporter) applyDefaults() {
	if e.Notifier == nil {
		e.Notifier = NopNotifier{}
	}
	if e.Logger == nil {
		e.Logger = NopLogger{}
	}
	if e.ProductName == "" {
		e.ProductName = DefaultProductName
	}
	if e.DefaultFormat == "" {
		e.DefaultFormat = FormatPDF
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.IDGenerator == nil {
		e.IDGenerator = uuid.NewString
	}
}
