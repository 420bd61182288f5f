package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/placesync/placesync/internal/util"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks")

	if err := writeFileAtomic(path, []byte("file:///home/u/a\n"), 0o644); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}
	util.AssertEqual(t, util.ReadFile(t, path), "file:///home/u/a\n")
}

func TestWriteFileAtomic_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks")
	util.WriteFile(t, path, "old content")

	if err := writeFileAtomic(path, []byte("new content"), 0o644); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}
	util.AssertEqual(t, util.ReadFile(t, path), "new content")
}

func TestWriteFileAtomic_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks")

	if err := writeFileAtomic(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "bookmarks")
	if err := writeFileAtomic(path, []byte("content"), 0o644); err == nil {
		t.Fatal("writeFileAtomic() succeeded with missing parent directory")
	}
}
