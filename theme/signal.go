package theme

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// StaticSignal always reports the same preference.
type StaticSignal bool

func (s StaticSignal) PrefersDark(context.Context) (bool, error) {
	return bool(s), nil
}

// SignalFunc adapts a function to SystemSignal.
type SignalFunc func(ctx context.Context) (bool, error)

func (f SignalFunc) PrefersDark(ctx context.Context) (bool, error) {
	return f(ctx)
}

// DefaultOverrideEnv forces the system preference when set to "dark" or
// "light".
const DefaultOverrideEnv = "REPORT_COLOR_SCHEME"

// EnvSignal derives the system preference from the environment: an explicit
// override variable first, then the terminal background advertised in
// COLORFGBG ("fg;bg"). Without either, it reports light.
type EnvSignal struct {
	Override string
	Lookup   func(key string) (string, bool)
}

// NewEnvSignal reads the process environment.
func NewEnvSignal() EnvSignal {
	return EnvSignal{Override: DefaultOverrideEnv, Lookup: os.LookupEnv}
}

func (s EnvSignal) PrefersDark(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	lookup := s.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if s.Override != "" {
		if value, ok := lookup(s.Override); ok {
			if mode, known := ParseMode(value); known {
				return mode == Dark, nil
			}
		}
	}

	value, ok := lookup("COLORFGBG")
	if !ok {
		return false, nil
	}
	parts := strings.Split(value, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, nil
	}
	// ANSI palette: 0-6 and 8 are dark backgrounds.
	return (bg >= 0 && bg <= 6) || bg == 8, nil
}
