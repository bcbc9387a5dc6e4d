// Package theme applies and persists a light/dark visual theme preference.
//
// The stored preference wins; without one, the system color-scheme signal
// decides. Toggling flips the current presentation state and persists the
// result. The preference is never deleted.
package theme

import "strings"

// Mode is a visual theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultKey is the preference key the mode is stored under.
const DefaultKey = "theme"

// Attribute is the presentation attribute carrying the active mode.
const Attribute = "data-theme"

// Icon names the indicator glyph for a mode.
type Icon string

const (
	IconSun  Icon = "bi-sun"
	IconMoon Icon = "bi-moon"
)

// ParseMode reads a stored or presented value. Anything other than "dark" is
// light; ok reports whether value was a recognized mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	}
	return Light, false
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Icon returns the indicator glyph: a sun while dark, a moon while light.
func (m Mode) Icon() Icon {
	if m == Dark {
		return IconSun
	}
	return IconMoon
}

func (m Mode) String() string {
	return string(m)
}
