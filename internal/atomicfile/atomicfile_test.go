package atomicfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.bin")

	if err := WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if b, _ := os.ReadFile(path); string(b) != "one" {
		t.Fatalf("content: got %q want %q", b, "one")
	}

	if err := WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatalf("WriteFile replace: %v", err)
	}
	if b, _ := os.ReadFile(path); string(b) != "two" {
		t.Fatalf("content after replace: got %q want %q", b, "two")
	}
}

func TestWriteFileFailureKeepsPrior(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")
	if err := WriteFile(path, []byte("intact"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A missing directory fails before any rename can happen.
	bad := filepath.Join(dir, "missing", "snap.bin")
	if err := WriteFile(bad, []byte("x"), 0o644); err == nil {
		t.Fatalf("expected error for missing dir")
	}

	if b, _ := os.ReadFile(path); string(b) != "intact" {
		t.Fatalf("prior content damaged: got %q", b)
	}
}

func TestWriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")
	if err := WriteFile(path, []byte("z"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".snap.bin.") {
			t.Fatalf("leftover temp file %q", e.Name())
		}
	}
}
