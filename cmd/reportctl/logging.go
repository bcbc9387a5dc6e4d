package main

import (
	"fmt"
	"io"
	"log/slog"

	errorslib "github.com/goliatone/go-errors"
)

// slogLogger adapts slog to the Debugf/Infof/Errorf logger used by the
// report and theme packages.
type slogLogger struct {
	logger *slog.Logger
}

func newLogger(w io.Writer, verbose bool) *slogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &slogLogger{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

func (l *slogLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *slogLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *slogLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// logError logs a rich error at its severity.
func (l *slogLogger) logError(err *errorslib.Error) {
	if err == nil {
		return
	}
	errorslib.LogBySeverity(l.logger, err)
}
