package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectDirectoryFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.go", []byte("package b"))
	writeFile(t, dir, "a.py", []byte("pass"))
	writeFile(t, dir, "notes.txt", []byte("not code"))
	writeFile(t, dir, "sub/c.rs", []byte("fn main() {}"))

	entries := Collect([]string{dir})

	var paths []string
	for _, e := range entries {
		if e.Err != nil {
			t.Fatalf("unexpected error for %s: %v", e.Path, e.Err)
		}
		paths = append(paths, e.Path)
	}
	want := []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "sub", "c.rs"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestCollectExplicitFileBypassesFilter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script.weird", []byte("hello"))

	entries := Collect([]string{path})
	if len(entries) != 1 || entries[0].Err != nil || entries[0].Path != path {
		t.Fatalf("expected explicit file to be selected, got %+v", entries)
	}
}

func TestCollectMissingPath(t *testing.T) {
	dir := t.TempDir()
	existing := writeFile(t, dir, "ok.go", []byte("package ok"))
	missing := filepath.Join(dir, "nope.go")

	entries := Collect([]string{missing, existing})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Err == nil {
		t.Error("expected error entry for missing path")
	}
	if entries[1].Err != nil || entries[1].Path != existing {
		t.Error("expected existing file to survive the missing one")
	}
}

func TestReadUTF8WithBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bom.go", append([]byte{0xEF, 0xBB, 0xBF}, []byte("package bom")...))

	content, err := Read(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if content != "package bom" {
		t.Errorf("expected BOM stripped, got %q", content)
	}
}

func TestReadWindows1252Fallback(t *testing.T) {
	dir := t.TempDir()
	// "café" in Windows-1252: é is 0xE9, invalid as UTF-8
	path := writeFile(t, dir, "legacy.c", []byte{'c', 'a', 'f', 0xE9})

	content, err := Read(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if content != "café" {
		t.Errorf("expected Windows-1252 decode, got %q", content)
	}
}

func TestReadTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.go", make([]byte, 2048))

	_, err := Read(path, 1024)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "gone.go"), 0)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrTooLarge) {
		t.Fatal("missing file must not be classified as too large")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"Main.PY", true},
		{"doc.pdf", true},
		{"style.css", true},
		{"readme.md", false},
		{"binary", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.path); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
