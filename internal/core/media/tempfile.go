package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"mediascribe/internal/core/logger"
)

// Handle references a waveform artifact on disk. Handles acquired from a
// TempFS own their file; handles wrapping a caller-supplied path do not,
// and Release is a no-op for them.
type Handle struct {
	Path  string
	owned bool
}

// Owned reports whether the pipeline owns (and must delete) the file.
func (h Handle) Owned() bool { return h.owned }

// TempFS allocates and cleans up intermediate pipeline files.
type TempFS struct {
	dir string
	log *logger.Logger
}

// NewTempFS creates a temp file manager rooted at dir.
// An empty dir falls back to the system temp directory.
func NewTempFS(dir string, log *logger.Logger) *TempFS {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logger.New()
	}
	return &TempFS{dir: dir, log: log}
}

// Acquire creates a uniquely named empty temp file with the given suffix
// and returns an owned handle for it.
func (t *TempFS) Acquire(suffix string) (Handle, error) {
	name := filepath.Join(t.dir, "mediascribe-"+uuid.New().String()+suffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return Handle{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return Handle{}, fmt.Errorf("failed to close temp file: %w", err)
	}
	return Handle{Path: name, owned: true}, nil
}

// Wrap returns an unowned handle around an existing file. Release never
// deletes it.
func (t *TempFS) Wrap(path string) Handle {
	return Handle{Path: path, owned: false}
}

// Release deletes the handle's file if the pipeline owns it. It is
// idempotent: releasing twice or releasing an already-missing file is safe.
// Deletion failures are logged and swallowed, never escalated.
func (t *TempFS) Release(h Handle) {
	if !h.owned || h.Path == "" {
		return
	}
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		t.log.WithField("path", h.Path).WithError(err).Warn("failed to remove temp file")
	}
}
