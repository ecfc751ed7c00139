package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q", data)
	}

	// Overwrite replaces the previous content
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("overwritten content = %q", data)
	}

	// No temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not remain after rename")
	}
}

func TestWriteJSONAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := WriteJSONAtomic(path, map[string]int{"n": 3}); err != nil {
		t.Fatalf("WriteJSONAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "{\n  \"n\": 3\n}"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestWriteJSONAtomicUnmarshalableValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := WriteJSONAtomic(path, make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created on marshal failure")
	}
}
