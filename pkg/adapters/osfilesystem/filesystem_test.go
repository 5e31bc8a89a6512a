package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_EnsureDirAndExists(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := fs.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	exists, err := fs.Exists(nested)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Errorf("expected %s to exist", nested)
	}

	exists, err = fs.Exists(filepath.Join(tmpDir, "nope"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected missing path to report false")
	}
}

func TestFileSystem_RemoveMissingFileIsNotError(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := fs.Remove(filepath.Join(tmpDir, "missing.mp4")); err != nil {
		t.Errorf("Remove of missing file should succeed, got: %v", err)
	}
}

func TestFileSystem_Size(t *testing.T) {
	fs := New()

	tmpDir, err := os.MkdirTemp("", "osfilesystem_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "out.bin")
	payload := []byte("twelve bytes")

	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	size, err := fs.Size(path)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), size)
	}
}
