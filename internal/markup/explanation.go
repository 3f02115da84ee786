package markup

import (
	"regexp"
	"strings"
)

var explanationRule = stdMatcher{re: regexp.MustCompile(`(?is)\[explanation\]\n?([^\]]*)\[/?explanation\]`)}

// applyExplanations wraps [explanation] blocks in a solution. The inner text
// stays eligible for paragraph wrapping.
func applyExplanations(seg *segment) {
	seg.lines = replaceSource(seg.lines, explanationRule, func(groups []string) []line {
		out := markupLines("<solution>\n" + `<div class="detailed-solution">`)
		out = append(out, textLines(seg.opts.explanationLabel)...)
		out = append(out, line{kind: kindText})
		if inner := strings.TrimRight(groups[1], "\n"); inner != "" {
			out = append(out, textLines(inner)...)
		}
		return append(out, markupLines("</div>\n</solution>")...)
	})
}
