package report

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Notifier surfaces blocking messages to the person who triggered an export.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) {
	if f == nil {
		return
	}
	f(message)
}

// NopNotifier drops alerts.
type NopNotifier struct{}

func (NopNotifier) Alert(string) {}
