package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	reportpdf "github.com/goliatone/go-report/adapters/pdf"
	storefs "github.com/goliatone/go-report/adapters/store/fs"
	reportxlsx "github.com/goliatone/go-report/adapters/xlsx"
	"github.com/goliatone/go-report/config"
	"github.com/goliatone/go-report/report"
	"github.com/goliatone/go-report/sources/chromium"
	"github.com/goliatone/go-report/sources/htmldoc"
)

type exportFlags struct {
	html    string
	url     string
	table   string
	title   string
	format  string
	out     string
	locale  string
	product string
}

func newExportCmd(root *rootFlags) *cobra.Command {
	flags := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a table from a page as a report file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(root.configPath)
			if err != nil {
				return err
			}
			flags.applyTo(cfg)
			logger := newLogger(cmd.ErrOrStderr(), root.verbose)
			return runExport(cmd, cfg, flags, logger)
		},
	}

	cmd.Flags().StringVar(&flags.html, "html", "", "HTML file containing the table")
	cmd.Flags().StringVar(&flags.url, "url", "", "Page URL rendered with headless Chromium")
	cmd.Flags().StringVarP(&flags.table, "table", "t", "", "Element ID of the table")
	cmd.Flags().StringVar(&flags.title, "title", "", "Report title")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (pdf/xlsx)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "Report locale (pt-BR, en-US, en-GB, es)")
	cmd.Flags().StringVar(&flags.product, "product", "", "Product name stamped in page footers")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("title")
	cmd.MarkFlagsMutuallyExclusive("html", "url")
	cmd.MarkFlagsOneRequired("html", "url")
	return cmd
}

func (f *exportFlags) applyTo(cfg *config.Config) {
	if f.format != "" {
		cfg.Report.Format = f.format
	}
	if f.out != "" {
		cfg.Report.OutputDir = f.out
	}
	if f.locale != "" {
		cfg.Report.Locale = f.locale
	}
	if f.product != "" {
		cfg.Report.ProductName = f.product
	}
}

func runExport(cmd *cobra.Command, cfg *config.Config, flags *exportFlags, logger *slogLogger) error {
	source, closeSource, err := openSource(cfg, flags)
	if err != nil {
		return err
	}
	defer closeSource()

	renderers, err := newRendererRegistry()
	if err != nil {
		return err
	}
	saver := storefs.NewStore(cfg.Report.OutputDir)

	exporter := report.NewExporter(source, renderers, saver)
	exporter.Logger = logger
	exporter.Notifier = writerNotifier(cmd.ErrOrStderr())
	exporter.ProductName = cfg.Report.ProductName
	exporter.DefaultLocale = cfg.Report.Locale
	exporter.ConsumptionTableID = cfg.Report.ConsumptionTableID

	result, err := exporter.ExportReport(cmd.Context(), report.Request{
		TableID: flags.table,
		Title:   flags.title,
		Format:  report.Format(cfg.Report.Format),
		Locale:  cfg.Report.Locale,
	})
	if err != nil {
		logger.logError(report.AsGoError(err))
		return err
	}

	path, err := saver.Path(result.Filename)
	if err != nil {
		path = filepath.Join(cfg.Report.OutputDir, result.Filename)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %d rows)\n", path, result.Pages, result.Rows)
	return nil
}

func newRendererRegistry() (*report.RendererRegistry, error) {
	registry := report.NewRendererRegistry()
	pdfOptions := reportpdf.DefaultOptions()
	pdfOptions.Creator = "reportctl " + version
	if err := registry.Register(report.FormatPDF, reportpdf.Factory(pdfOptions)); err != nil {
		return nil, err
	}
	if err := registry.Register(report.FormatXLSX, reportxlsx.Factory()); err != nil {
		return nil, err
	}
	return registry, nil
}

func openSource(cfg *config.Config, flags *exportFlags) (report.TableSource, func(), error) {
	switch {
	case flags.html != "":
		src, err := htmldoc.Open(flags.html)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	case flags.url != "":
		src := newChromiumSource(cfg, flags.url)
		return src, func() { _ = src.Close() }, nil
	}
	return nil, nil, errors.New("one of --html or --url is required")
}

func newChromiumSource(cfg *config.Config, url string) *chromium.Source {
	src := chromium.New(url)
	src.BrowserPath = cfg.Chromium.ExecPath
	src.Headless = cfg.Chromium.Headless
	src.Timeout = cfg.Chromium.Timeout
	src.Args = cfg.Chromium.Args
	src.ColorScheme = cfg.Chromium.ColorScheme
	return src
}

func writerNotifier(w io.Writer) report.Notifier {
	return report.NotifierFunc(func(message string) {
		fmt.Fprintf(w, "! %s\n", message)
	})
}
