// Package storefs saves rendered reports to a directory on disk. Files are
// written to a temp file and renamed into place, so a failed export never
// leaves a partial report behind.
package storefs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-report/report"
)

const metaSuffix = ".meta.json"

// Store provides filesystem-backed report storage.
type Store struct {
	Root string
	Now  func() time.Time
}

// NewStore creates a store rooted at root.
func NewStore(root string) *Store {
	return &Store{Root: root, Now: time.Now}
}

// Save writes a report under filename, replacing any previous report with the
// same name. The report is removed again if its metadata cannot be written.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader, meta report.ArtifactMeta) (report.ArtifactRef, error) {
	pathOnDisk, err := s.target(ctx, filename)
	if err != nil {
		return report.ArtifactRef{}, err
	}
	if err := os.MkdirAll(filepath.Dir(pathOnDisk), 0o755); err != nil {
		return report.ArtifactRef{}, err
	}

	size, err := writeAtomic(pathOnDisk, ".report-*", r)
	if err != nil {
		return report.ArtifactRef{}, err
	}

	meta.Size = size
	if meta.Filename == "" {
		meta.Filename = path.Base(filename)
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = s.now()
	}
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return report.ArtifactRef{}, err
	}
	if _, err := writeAtomic(pathOnDisk+metaSuffix, ".meta-*", strings.NewReader(string(payload))); err != nil {
		_ = os.Remove(pathOnDisk)
		return report.ArtifactRef{}, err
	}

	return report.ArtifactRef{Key: filename, Meta: meta}, nil
}

// Open reads a saved report.
func (s *Store) Open(ctx context.Context, filename string) (io.ReadCloser, report.ArtifactMeta, error) {
	pathOnDisk, err := s.target(ctx, filename)
	if err != nil {
		return nil, report.ArtifactMeta{}, err
	}

	file, err := os.Open(pathOnDisk)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, report.ArtifactMeta{}, report.NewError(report.KindNotFound, fmt.Sprintf("report %q not found", filename), err)
		}
		return nil, report.ArtifactMeta{}, err
	}

	meta := readMeta(pathOnDisk)
	if meta.Filename == "" {
		meta.Filename = path.Base(filename)
	}
	if meta.ContentType == "" {
		meta.ContentType = mime.TypeByExtension(filepath.Ext(pathOnDisk))
	}
	if meta.Size == 0 {
		if info, err := file.Stat(); err == nil {
			meta.Size = info.Size()
			if meta.CreatedAt.IsZero() {
				meta.CreatedAt = info.ModTime()
			}
		}
	}
	return file, meta, nil
}

// Delete removes a saved report and its metadata. Missing files are ignored.
func (s *Store) Delete(ctx context.Context, filename string) error {
	pathOnDisk, err := s.target(ctx, filename)
	if err != nil {
		return err
	}
	_ = os.Remove(pathOnDisk)
	_ = os.Remove(pathOnDisk + metaSuffix)
	return nil
}

// Path returns the location a report with filename is saved at.
func (s *Store) Path(filename string) (string, error) {
	return s.target(context.Background(), filename)
}

func (s *Store) target(ctx context.Context, filename string) (string, error) {
	if s == nil {
		return "", report.NewError(report.KindValidation, "store is nil", nil)
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	if s.Root == "" {
		return "", report.NewError(report.KindValidation, "store root is required", nil)
	}
	if filename == "" {
		return "", report.NewError(report.KindValidation, "filename is required", nil)
	}

	rel := strings.TrimPrefix(path.Clean("/"+filename), "/")
	if rel == "" || rel == "." {
		return "", report.NewError(report.KindValidation, "invalid filename", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", report.NewError(report.KindValidation, "filename escapes root", nil)
	}
	return target, nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func writeAtomic(pathOnDisk, pattern string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(pathOnDisk), pattern)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), pathOnDisk); err != nil {
		return 0, err
	}
	return size, nil
}

func readMeta(pathOnDisk string) report.ArtifactMeta {
	data, err := os.ReadFile(pathOnDisk + metaSuffix)
	if err != nil {
		return report.ArtifactMeta{}
	}
	var meta report.ArtifactMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return report.ArtifactMeta{}
	}
	return meta
}
