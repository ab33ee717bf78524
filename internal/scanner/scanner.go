package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// ErrTooLarge marks inputs rejected by the size guard. The pipeline treats
// it as a skip, not a failure.
var ErrTooLarge = errors.New("file exceeds size limit")

// supportedExtensions lists the file types picked up when walking a
// directory. Files named explicitly on the command line bypass the filter.
var supportedExtensions = map[string]bool{
	".py": true, ".js": true, ".java": true, ".cpp": true, ".c": true,
	".h": true, ".cs": true, ".php": true, ".rb": true, ".go": true,
	".rs": true, ".ts": true, ".html": true, ".css": true,
	".pdf": true,
}

// Entry is one selected input file, or the error that selecting it produced.
type Entry struct {
	Path string
	Err  error
}

// IsSupported reports whether the path has a recognized extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Collect resolves command-line arguments into an ordered list of inputs.
// File arguments are taken as-is; directory arguments are walked recursively
// and filtered by extension. An unreadable argument becomes an Entry carrying
// the error so the batch can report it and keep going.
func Collect(args []string) []Entry {
	var entries []Entry
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			entries = append(entries, Entry{Path: arg, Err: err})
			continue
		}
		if !info.IsDir() {
			entries = append(entries, Entry{Path: arg})
			continue
		}
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				entries = append(entries, Entry{Path: path, Err: err})
				return nil
			}
			if !d.IsDir() && IsSupported(path) {
				entries = append(entries, Entry{Path: path})
			}
			return nil
		})
		if walkErr != nil {
			entries = append(entries, Entry{Path: arg, Err: walkErr})
		}
	}
	return entries
}

// Read returns the file's text content. Files larger than maxSize fail with
// ErrTooLarge before any bytes are read; maxSize <= 0 disables the guard.
// PDF inputs are reduced to their plain text.
func Read(path string, maxSize int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if maxSize > 0 && info.Size() > maxSize {
		return "", fmt.Errorf("%w (%d bytes, max %d)", ErrTooLarge, info.Size(), maxSize)
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decodeText(raw), nil
}

// decodeText accepts UTF-8 (with or without BOM) and falls back to
// Windows-1252 for legacy single-byte encodings. Every byte sequence is
// valid Windows-1252, so decoding never fails outright.
func decodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	if textBuilder.Len() == 0 {
		return "", fmt.Errorf("no extractable text in %s", path)
	}
	return textBuilder.String(), nil
}
