package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"code-summarizer/internal/pipeline"
)

func TestMain(m *testing.M) {
	color.NoColor = true // deterministic output in tests
	os.Exit(m.Run())
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf)

	if err := w.WriteSummary("pkg/main.go", "does things"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Code Analysis for: pkg/main.go") {
		t.Errorf("expected file header, got:\n%s", out)
	}
	if !strings.Contains(out, "does things") {
		t.Error("expected summary body")
	}
	if !strings.Contains(out, separator) {
		t.Error("expected separator lines")
	}
	if err := w.Close(pipeline.Stats{}); err != nil {
		t.Fatal(err)
	}
}

func TestTextFileWriterAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")

	w1, err := NewTextFileWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w1.WriteSummary("first.go", "first summary"); err != nil {
		t.Fatal(err)
	}
	if err := w1.Close(pipeline.Stats{Total: 1, Summarized: 1}); err != nil {
		t.Fatal(err)
	}

	// Second run against the same file must preserve the first block.
	w2, err := NewTextFileWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w2.WriteSummary("second.py", "second summary"); err != nil {
		t.Fatal(err)
	}
	if err := w2.Close(pipeline.Stats{Total: 1, Summarized: 1}); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Index(string(content), "first summary")
	second := strings.Index(string(content), "second summary")
	if first == -1 || second == -1 {
		t.Fatalf("expected both summaries present, got:\n%s", content)
	}
	if first > second {
		t.Error("expected summaries in run order")
	}
}

func TestTextFileWriterBadPath(t *testing.T) {
	if _, err := NewTextFileWriter(filepath.Join(t.TempDir(), "missing", "dir", "out.txt")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestPDFWriterProducesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	w := NewPDFWriter(path, "myproject")

	if err := w.WriteSummary("a.go", "**Bold** summary with `code` and\n- a bullet"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteSummary("b.py", "plain summary"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(pipeline.Stats{Total: 2, Summarized: 2}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected pdf file, got %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty pdf")
	}
	head := make([]byte, 5)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Read(head); err != nil {
		t.Fatal(err)
	}
	if string(head) != "%PDF-" {
		t.Errorf("expected PDF header, got %q", head)
	}
}
