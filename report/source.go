package report

import "context"

// SourceFunc adapts a function to a TableSource.
type SourceFunc func(ctx context.Context, id string) (SourceTable, bool, error)

func (f SourceFunc) Table(ctx context.Context, id string) (SourceTable, bool, error) {
	if f == nil {
		return SourceTable{}, false, nil
	}
	return f(ctx, id)
}

// StaticSource serves tables from a map keyed by element ID.
type StaticSource map[string]SourceTable

func (s StaticSource) Table(ctx context.Context, id string) (SourceTable, bool, error) {
	_ = ctx
	table, ok := s[id]
	return table, ok, nil
}
