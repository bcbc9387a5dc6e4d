package report

import (
	"context"
	"fmt"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindRendererUnavailable, "no backend", nil), errorslib.CategoryExternal, "renderer_unavailable"},
		{NewError(KindTableNotFound, "missing", nil), errorslib.CategoryNotFound, "table_not_found"},
		{NewError(KindValidation, "bad row", nil), errorslib.CategoryValidation, "validation"},
		{NewError(KindRenderFailure, "boom", nil), errorslib.CategoryInternal, "render_failure"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{fmt.Errorf("plain"), errorslib.CategoryInternal, "render_failure"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestKindFromError_Wrapped(t *testing.T) {
	inner := NewError(KindValidation, "row too long", nil)
	outer := NewError(KindRenderFailure, "report generation failed", fmt.Errorf("body row 2: %w", inner))

	if got := KindFromError(outer); got != KindRenderFailure {
		t.Fatalf("expected render_failure, got %s", got)
	}
	if got := KindFromError(fmt.Errorf("ctx: %w", inner)); got != KindValidation {
		t.Fatalf("expected validation, got %s", got)
	}
	if got := KindFromError(AsGoError(NewError(KindTableNotFound, "gone", nil))); got != KindTableNotFound {
		t.Fatalf("expected table_not_found through go-errors, got %s", got)
	}
	if got := KindFromError(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %s", got)
	}
}
