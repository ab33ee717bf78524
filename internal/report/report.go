package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"code-summarizer/internal/pipeline"
)

var separator = strings.Repeat("=", 80)

// Writer receives each summary as it is produced and finalizes its report
// when the run ends. WriteSummary satisfies pipeline.Sink.
type Writer interface {
	WriteSummary(path, summary string) error
	Close(stats pipeline.Stats) error
}

// ConsoleWriter prints each summary to the terminal with a colored header.
type ConsoleWriter struct {
	out io.Writer
}

func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	return &ConsoleWriter{out: out}
}

func (w *ConsoleWriter) WriteSummary(path, summary string) error {
	header := color.New(color.FgGreen).Sprintf("Code Analysis for: %s", path)
	_, err := fmt.Fprintf(w.out, "\n%s\n%s\n%s\n\n%s\n\n%s\n", separator, header, separator, summary, separator)
	return err
}

func (w *ConsoleWriter) Close(stats pipeline.Stats) error {
	return nil
}

// TextFileWriter appends summary blocks to a plain-text report file. Prior
// content is always preserved, and each block is synced to disk before the
// pipeline moves to the next file.
type TextFileWriter struct {
	f *os.File
}

func NewTextFileWriter(path string) (*TextFileWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return &TextFileWriter{f: f}, nil
}

func (w *TextFileWriter) WriteSummary(path, summary string) error {
	block := fmt.Sprintf("\n%s\nCode Analysis for: %s\n%s\n\n%s\n\n%s\n", separator, path, separator, summary, separator)
	if _, err := w.f.WriteString(block); err != nil {
		return err
	}
	return w.f.Sync()
}

// Close appends a run footer with the batch statistics.
func (w *TextFileWriter) Close(stats pipeline.Stats) error {
	footer := fmt.Sprintf("\nProcessed %d files (%d summarized, %d skipped, %d failed)\n",
		stats.Total, stats.Summarized, stats.Skipped, stats.Failed)
	if _, err := w.f.WriteString(footer); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
