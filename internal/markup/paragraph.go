package markup

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	// paragraphCandidate accepts text that does not open with a tag and is
	// not blank.
	paragraphCandidate = newLookMatcher(`^(?!\s*<|\s*$).+$`, regexp2.None)
	suspendingTag      = regexp.MustCompile(`</?(?:script|pre|label|description)\b[^>]*>`)
)

// wrapParagraphs wraps remaining author text in <p>. Wrapping is suspended
// between an opening script, pre, label or description tag and its closing
// tag, which may sit on any later line, including generated ones.
func wrapParagraphs(seg *segment) {
	wrapping := true
	for i, l := range seg.lines {
		tags := suspendingTag.FindAllStringIndex(l.text, -1)
		if l.kind == kindMarkup {
			for _, tag := range tags {
				wrapping = strings.HasPrefix(l.text[tag[0]:], "</")
			}
			continue
		}
		if len(tags) == 0 {
			if wrapping && paragraphCandidate.matchString(l.text) {
				seg.lines[i].text = "<p>" + l.text + "</p>"
			}
			seg.lines[i].kind = kindMarkup
			continue
		}
		var b strings.Builder
		prev := 0
		for _, tag := range tags {
			b.WriteString(wrapPiece(l.text[prev:tag[0]], wrapping))
			b.WriteString(l.text[tag[0]:tag[1]])
			wrapping = strings.HasPrefix(l.text[tag[0]:], "</")
			prev = tag[1]
		}
		b.WriteString(wrapPiece(l.text[prev:], wrapping))
		seg.lines[i] = line{text: b.String(), kind: kindMarkup}
	}
}

func wrapPiece(piece string, wrapping bool) string {
	if wrapping && paragraphCandidate.matchString(piece) {
		return "<p>" + piece + "</p>"
	}
	return piece
}

var blankRun = regexp.MustCompile(`\n\n\n`)

// collapseBlankLines replaces each run of three newlines with one.
func collapseBlankLines(text string) string {
	return blankRun.ReplaceAllString(text, "\n")
}
