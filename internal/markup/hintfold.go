package markup

import "regexp"

var (
	hintSpan   = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	hintIndent = regexp.MustCompile(`\r?\n[ \t]*`)
)

// foldHints joins a hint that spans lines into a single line.
func foldHints(seg *segment) {
	seg.lines = mapSourceText(seg.lines, func(text string) string {
		return hintSpan.ReplaceAllStringFunc(text, func(hint string) string {
			return hintIndent.ReplaceAllString(hint, " ")
		})
	})
}
