// Package chromium reads report tables from a live page rendered by headless
// Chromium. Cell text is the browser's own innerText, so line breaks match
// what the user sees.
package chromium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-report/report"
)

// ColorScheme values accepted for prefers-color-scheme emulation.
const (
	ColorSchemeLight = "light"
	ColorSchemeDark  = "dark"
)

const prefersDarkScript = `!!(window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches)`

// Source loads a page in a shared headless Chromium instance and reads
// tables out of it. Set either URL or HTML.
type Source struct {
	URL         string
	HTML        []byte
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string
	ColorScheme string

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var _ report.TableSource = (*Source)(nil)

// New creates a headless source for url.
func New(url string) *Source {
	return &Source{URL: url, Headless: true}
}

type tablePayload struct {
	Found     bool       `json:"found"`
	Header    []string   `json:"header"`
	Body      [][]string `json:"body"`
	Footer    []string   `json:"footer"`
	HasFooter bool       `json:"hasFooter"`
}

func (p tablePayload) sourceTable() report.SourceTable {
	return report.SourceTable{
		Header:    p.Header,
		Body:      p.Body,
		Footer:    p.Footer,
		HasFooter: p.HasFooter,
	}
}

// Table loads the page and reads the table with the given element id.
func (s *Source) Table(ctx context.Context, id string) (report.SourceTable, bool, error) {
	if s == nil {
		return report.SourceTable{}, false, errors.New("chromium source is nil")
	}
	if id == "" {
		return report.SourceTable{}, false, nil
	}
	script, err := tableScript(id)
	if err != nil {
		return report.SourceTable{}, false, err
	}

	var payload tablePayload
	if err := s.run(ctx, chromedp.Evaluate(script, &payload)); err != nil {
		return report.SourceTable{}, false, fmt.Errorf("chromium table %q: %w", id, err)
	}
	if !payload.Found {
		return report.SourceTable{}, false, nil
	}
	return payload.sourceTable(), true, nil
}

// PrefersDark reports whether the page matches prefers-color-scheme: dark.
// A browser without matchMedia reports false.
func (s *Source) PrefersDark(ctx context.Context) (bool, error) {
	if s == nil {
		return false, errors.New("chromium source is nil")
	}
	var dark bool
	if err := s.run(ctx, chromedp.Evaluate(prefersDarkScript, &dark)); err != nil {
		return false, fmt.Errorf("chromium color scheme: %w", err)
	}
	return dark, nil
}

// Close releases Chromium resources if they have been initialized.
func (s *Source) Close() error {
	if s == nil {
		return nil
	}
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

func (s *Source) run(ctx context.Context, read chromedp.Action) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	actions, err := s.loadActions()
	if err != nil {
		return err
	}
	if err := s.ensureBrowser(); err != nil {
		return fmt.Errorf("chromium init: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if s.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, s.Timeout)
		defer cancelTimeout()
	}

	return chromedp.Run(execCtx, append(actions, read)...)
}

func (s *Source) loadActions() ([]chromedp.Action, error) {
	actions := []chromedp.Action{}
	if features := mediaFeatures(s.ColorScheme); features != nil {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithFeatures(features).Do(ctx)
		}))
	} else if s.ColorScheme != "" {
		return nil, report.NewError(report.KindValidation, fmt.Sprintf("unsupported color scheme: %s", s.ColorScheme), nil)
	}

	switch {
	case s.URL != "":
		actions = append(actions, chromedp.Navigate(s.URL))
	case len(s.HTML) > 0:
		content := string(s.HTML)
		actions = append(actions,
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(tree.Frame.ID, content).Do(ctx)
			}),
		)
	default:
		return nil, report.NewError(report.KindValidation, "chromium source needs a URL or HTML", nil)
	}
	return append(actions, chromedp.WaitReady("body", chromedp.ByQuery)), nil
}

func (s *Source) ensureBrowser() error {
	s.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if s.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(s.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", s.Headless))
		options = append(options, allocatorOptionsFromArgs(s.Args)...)

		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		s.browserCtx, s.browserCancel = chromedp.NewContext(s.allocCtx)
	})
	if s.allocCtx == nil || s.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

// tableScript builds the in-page read of a table. The selectors mirror the
// static HTML source: th cells of the first "thead tr", td cells of each
// "tbody tr", th cells of the first "tfoot tr".
func tableScript(id string) (string, error) {
	quoted, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`(function (id) {
  const root = document.getElementById(id);
  if (!root) { return { found: false }; }
  const text = (el) => el.innerText;
  const head = root.querySelector("thead tr");
  const foot = root.querySelector("tfoot tr");
  return {
    found: true,
    header: head ? Array.from(head.querySelectorAll("th"), text) : [],
    body: Array.from(root.querySelectorAll("tbody tr"), (tr) => Array.from(tr.querySelectorAll("td"), text)),
    footer: foot ? Array.from(foot.querySelectorAll("th"), text) : [],
    hasFooter: !!foot,
  };
})(%s)`, quoted), nil
}

func mediaFeatures(scheme string) []*emulation.MediaFeature {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case ColorSchemeLight:
		return []*emulation.MediaFeature{{Name: "prefers-color-scheme", Value: ColorSchemeLight}}
	case ColorSchemeDark:
		return []*emulation.MediaFeature{{Name: "prefers-color-scheme", Value: ColorSchemeDark}}
	}
	return nil
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimPrefix(strings.TrimSpace(arg), "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
