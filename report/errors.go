package report

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines report error kinds.
type ErrorKind string

const (
	KindRendererUnavailable ErrorKind = "renderer_unavailable"
	KindTableNotFound       ErrorKind = "table_not_found"
	KindRenderFailure       ErrorKind = "render_failure"
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindCanceled            ErrorKind = "canceled"
)

// ReportError wraps errors with a kind.
type ReportError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ReportError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewError creates a new report error.
func NewError(kind ErrorKind, msg string, err error) *ReportError {
	return &ReportError{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindFromError(err)
	msg := err.Error()

	var reportErr *ReportError
	if errors.As(err, &reportErr) && reportErr.Msg != "" {
		msg = reportErr.Msg
	}

	var mapped *errorslib.Error
	switch kind {
	case KindRendererUnavailable:
		mapped = errorslib.New(msg, errorslib.CategoryExternal).WithTextCode(string(kind))
	case KindTableNotFound, KindNotFound:
		mapped = errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode(string(kind))
	case KindValidation:
		mapped = errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(kind))
	case KindCanceled:
		mapped = errorslib.New(msg, errorslib.CategoryOperation).WithTextCode(string(kind))
	default:
		mapped = errorslib.New(msg, errorslib.CategoryInternal).WithTextCode(string(KindRenderFailure))
	}
	mapped.Source = err
	return mapped
}

// KindFromError maps an error to its report error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) && ge.TextCode != "" {
		return ErrorKind(ge.TextCode)
	}

	return KindRenderFailure
}
