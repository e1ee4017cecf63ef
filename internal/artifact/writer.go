// Package artifact persists downloaded videos under timestamped file names.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout formats the current time as YYYYMMDD_HHmmss.
const TimestampLayout = "20060102_150405"

// maxCollisionSuffix bounds the search for a free name within one second.
const maxCollisionSuffix = 1000

// Writer writes one artifact per call into Dir.
type Writer struct {
	Dir    string
	Prefix string
	Ext    string
	Now    func() time.Time
}

// NewWriter creates a writer for dir. An empty dir means the working directory.
func NewWriter(dir, prefix string) *Writer {
	if prefix == "" {
		prefix = "santa_video"
	}
	return &Writer{Dir: dir, Prefix: prefix, Ext: ".mp4", Now: time.Now}
}

// Saved describes a written artifact.
type Saved struct {
	Path  string
	Bytes int
}

// SizeMB returns the size in mebibytes.
func (s Saved) SizeMB() float64 {
	return float64(s.Bytes) / 1024 / 1024
}

// Name returns the base file name for t.
func (w *Writer) Name(t time.Time) string {
	return fmt.Sprintf("%s_%s%s", w.Prefix, t.Format(TimestampLayout), w.Ext)
}

// Write stores data under {Dir}/{Prefix}_{timestamp}{Ext}. An existing file is
// never overwritten; a _N suffix is added instead.
func (w *Writer) Write(data []byte) (*Saved, error) {
	dir := w.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	now := w.Now
	if now == nil {
		now = time.Now
	}
	base := w.Name(now())
	stem := base[:len(base)-len(w.Ext)]

	for i := 0; i < maxCollisionSuffix; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, i, w.Ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}

		n, werr := f.Write(data)
		cerr := f.Close()
		if werr != nil {
			return nil, fmt.Errorf("failed to write output file: %w", werr)
		}
		if cerr != nil {
			return nil, fmt.Errorf("failed to close output file: %w", cerr)
		}
		return &Saved{Path: path, Bytes: n}, nil
	}
	return nil, fmt.Errorf("no free file name for %s", base)
}
