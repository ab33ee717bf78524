package report

import "regexp"

var (
	ansiRe    = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe  = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	codeRe    = regexp.MustCompile("`([^`]*)`")
)

// CleanMarkdown flattens model-emitted markdown into plain text suitable for
// the PDF report: ANSI escapes and heading markers are dropped, emphasis and
// inline-code markers are unwrapped, bullets become "• ".
func CleanMarkdown(text string) string {
	text = ansiRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "• ")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	return text
}
