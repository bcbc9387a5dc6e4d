package theme

import (
	"context"

	errorslib "github.com/goliatone/go-errors"
)

// Error text codes for theme failures.
const (
	TextCodeStoreRead  = "theme_store_read"
	TextCodeStoreWrite = "theme_store_write"
)

// Controller applies the theme preference to a Presentation.
type Controller struct {
	Store        PreferenceStore
	System       SystemSignal
	Presentation Presentation
	Indicator    Indicator
	Logger       Logger
	Key          string
}

// NewController wires a controller with defaults.
func NewController(store PreferenceStore, system SystemSignal, presentation Presentation) *Controller {
	return &Controller{
		Store:        store,
		System:       system,
		Presentation: presentation,
		Logger:       NopLogger{},
		Key:          DefaultKey,
	}
}

// ApplyStoredOrSystemTheme applies the stored mode, or the system preference
// when nothing is stored. It never writes to the store.
func (c *Controller) ApplyStoredOrSystemTheme(ctx context.Context) (Mode, error) {
	c.applyDefaults()

	mode, stored, err := c.storedMode(ctx)
	if err != nil {
		return "", err
	}
	if !stored {
		mode = c.systemMode(ctx)
	}

	c.present(mode)
	c.UpdateIndicator(mode)
	c.Logger.Debugf("theme applied: %s (stored=%t)", mode, stored)
	return mode, nil
}

// ToggleTheme flips the presented mode, applies it and persists it. An absent
// or unrecognized presented value counts as light. The new mode is presented
// even when persisting fails.
func (c *Controller) ToggleTheme(ctx context.Context) (Mode, error) {
	c.applyDefaults()

	next := c.Current().Toggle()
	c.present(next)

	if c.Store != nil {
		if err := c.Store.Set(ctx, c.Key, next.String()); err != nil {
			c.Logger.Errorf("theme persist failed: %v", err)
			return next, errorslib.Wrap(err, errorslib.CategoryExternal, "theme: write preference").
				WithTextCode(TextCodeStoreWrite)
		}
	}

	c.UpdateIndicator(next)
	c.Logger.Infof("theme toggled: %s", next)
	return next, nil
}

// UpdateIndicator shows the glyph for mode. A nil indicator is ignored.
func (c *Controller) UpdateIndicator(mode Mode) {
	if c == nil || c.Indicator == nil {
		return
	}
	c.Indicator.SetIcon(mode.Icon())
}

// Current returns the presented mode, light when nothing is presented.
func (c *Controller) Current() Mode {
	if c == nil || c.Presentation == nil {
		return Light
	}
	value, ok := c.Presentation.Attribute(Attribute)
	if !ok {
		return Light
	}
	mode, _ := ParseMode(value)
	return mode
}

func (c *Controller) storedMode(ctx context.Context) (Mode, bool, error) {
	if c.Store == nil {
		return "", false, nil
	}
	value, ok, err := c.Store.Get(ctx, c.Key)
	if err != nil {
		return "", false, errorslib.Wrap(err, errorslib.CategoryExternal, "theme: read preference").
			WithTextCode(TextCodeStoreRead)
	}
	if !ok || value == "" {
		return "", false, nil
	}
	mode, known := ParseMode(value)
	if !known {
		c.Logger.Debugf("theme: unrecognized stored value %q, using %s", value, mode)
	}
	return mode, true, nil
}

func (c *Controller) systemMode(ctx context.Context) Mode {
	if c.System == nil {
		return Light
	}
	dark, err := c.System.PrefersDark(ctx)
	if err != nil {
		c.Logger.Errorf("theme: system preference unavailable: %v", err)
		return Light
	}
	if dark {
		return Dark
	}
	return Light
}

func (c *Controller) present(mode Mode) {
	if c.Presentation != nil {
		c.Presentation.SetAttribute(Attribute, mode.String())
	}
}

func (c *Controller) applyDefaults() {
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
}
