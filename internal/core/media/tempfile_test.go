package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempFSAcquireRelease(t *testing.T) {
	dir := t.TempDir()
	tmp := NewTempFS(dir, nil)

	h, err := tmp.Acquire(".wav")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !h.Owned() {
		t.Error("acquired handle should be owned")
	}
	if !strings.HasSuffix(h.Path, ".wav") {
		t.Errorf("path %q missing suffix", h.Path)
	}
	if filepath.Dir(h.Path) != dir {
		t.Errorf("path %q not under %q", h.Path, dir)
	}
	if _, err := os.Stat(h.Path); err != nil {
		t.Fatalf("acquired file missing: %v", err)
	}

	tmp.Release(h)
	if _, err := os.Stat(h.Path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Release: %v", err)
	}

	// Releasing again must be a no-op.
	tmp.Release(h)
}

func TestTempFSAcquireUnique(t *testing.T) {
	tmp := NewTempFS(t.TempDir(), nil)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		h, err := tmp.Acquire(".wav")
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if seen[h.Path] {
			t.Fatalf("duplicate temp path %q", h.Path)
		}
		seen[h.Path] = true
	}
}

func TestTempFSWrapNotOwned(t *testing.T) {
	dir := t.TempDir()
	tmp := NewTempFS(dir, nil)

	path := filepath.Join(dir, "user.wav")
	if err := os.WriteFile(path, []byte("data"), 0600); err != nil {
		t.Fatal(err)
	}

	h := tmp.Wrap(path)
	if h.Owned() {
		t.Error("wrapped handle should not be owned")
	}

	tmp.Release(h)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Release deleted an unowned file: %v", err)
	}
}

func TestTempFSReleaseZeroHandle(t *testing.T) {
	tmp := NewTempFS(t.TempDir(), nil)
	tmp.Release(Handle{})
}
