package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// MemorySaver keeps saved reports in memory (test/dev only).
type MemorySaver struct {
	objects map[string]memoryObject
	order   []string
}

type memoryObject struct {
	data []byte
	meta ArtifactMeta
}

// NewMemorySaver creates an in-memory saver.
func NewMemorySaver() *MemorySaver {
	return &MemorySaver{objects: make(map[string]memoryObject)}
}

// Save stores a report under its filename.
func (s *MemorySaver) Save(ctx context.Context, filename string, r io.Reader, meta ArtifactMeta) (ArtifactRef, error) {
	_ = ctx
	if filename == "" {
		return ArtifactRef{}, NewError(KindValidation, "filename is required", nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ArtifactRef{}, err
	}
	meta.Size = int64(len(data))
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}

	if _, exists := s.objects[filename]; !exists {
		s.order = append(s.order, filename)
	}
	s.objects[filename] = memoryObject{data: data, meta: meta}
	return ArtifactRef{Key: filename, Meta: meta}, nil
}

// Open returns a saved report.
func (s *MemorySaver) Open(filename string) (io.ReadCloser, ArtifactMeta, error) {
	obj, ok := s.objects[filename]
	if !ok {
		return nil, ArtifactMeta{}, NewError(KindNotFound, fmt.Sprintf("report %q not found", filename), nil)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.meta, nil
}

// Filenames lists saved reports in save order.
func (s *MemorySaver) Filenames() []string {
	return append([]string(nil), s.order...)
}
