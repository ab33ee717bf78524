package prompt

import (
	"strings"
	"testing"
)

func TestBuildEmbedsContentAndLanguage(t *testing.T) {
	code := "package main\n\nfunc main() {}\n"
	p := Build("cmd/tool/main.go", code)

	if !strings.Contains(p, "this go code file") {
		t.Errorf("expected language derived from extension, got prompt:\n%s", p)
	}
	if !strings.Contains(p, code) {
		t.Error("expected verbatim file content in prompt")
	}
	for _, section := range []string{
		"1. Overall Purpose",
		"2. Main Components",
		"3. Implementation Details",
		"4. Dependencies",
		"5. Technical Highlights",
	} {
		if !strings.Contains(p, section) {
			t.Errorf("expected section %q in prompt", section)
		}
	}
}

func TestBuildNoExtension(t *testing.T) {
	p := Build("Makefile", "all:")
	if !strings.Contains(p, "this source code file") {
		t.Error("expected fallback language name for extensionless file")
	}
}

func TestBuildIsPure(t *testing.T) {
	a := Build("a.py", "print(1)")
	b := Build("a.py", "print(1)")
	if a != b {
		t.Error("expected identical prompts for identical input")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
		wantCut   int
	}{
		{"under limit", "one two three", 10, 0},
		{"at limit", "one two three", 3, 0},
		{"over limit", "one two three four five", 3, 2},
		{"disabled", strings.Repeat("word ", 100), 0, 0},
		{"empty", "", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cut := Truncate(tt.text, tt.maxTokens)
			if cut != tt.wantCut {
				t.Fatalf("expected %d words cut, got %d", tt.wantCut, cut)
			}
			if tt.maxTokens > 0 && len(strings.Fields(got)) > tt.maxTokens {
				t.Errorf("truncated text exceeds %d words", tt.maxTokens)
			}
			if tt.wantCut == 0 && got != tt.text {
				t.Error("expected text unchanged when nothing is cut")
			}
		})
	}
}
