package prompt

import (
	"fmt"
	"path/filepath"
	"strings"
)

const template = `Please analyze this %s code file and provide a detailed technical summary including:

1. Overall Purpose: Briefly explain what this code does
2. Main Components: Describe the key classes, functions, or modules
3. Implementation Details: Notable algorithms, patterns, or techniques used
4. Dependencies: List any external libraries or systems required
5. Technical Highlights: Any interesting or important technical aspects

Code to analyze:

%s

Please structure your response in clear sections using the numbers above.`

// Build wraps file content in the analysis instruction sent to the model.
// Pure function; truncation is applied separately via Truncate.
func Build(path, content string) string {
	lang := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if lang == "" {
		lang = "source"
	}
	return fmt.Sprintf(template, lang, content)
}

// Truncate keeps the first maxTokens whitespace-delimited words of text and
// returns how many were cut. Tokens are approximated by words to avoid a
// tokenizer dependency. maxTokens <= 0 disables the limit.
func Truncate(text string, maxTokens int) (string, int) {
	if maxTokens <= 0 {
		return text, 0
	}
	words := strings.Fields(text)
	if len(words) <= maxTokens {
		return text, 0
	}
	return strings.Join(words[:maxTokens], " "), len(words) - maxTokens
}
