package markup

import (
	"regexp"
	"strings"
)

var demandHintLine = regexp.MustCompile(`^\s*\|\|(.*?)\|\|\s*$`)

// collectDemandHints removes "|| hint ||" lines and records their text.
func collectDemandHints(seg *segment) {
	out := seg.lines[:0:0]
	for _, l := range seg.lines {
		if l.isSource() {
			if m := demandHintLine.FindStringSubmatch(l.text); m != nil {
				seg.demandHints = append(seg.demandHints, strings.TrimSpace(m[1]))
				continue
			}
		}
		out = append(out, l)
	}
	seg.lines = out
}

func renderDemandHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n<demandhint>\n")
	for _, hint := range hints {
		b.WriteString("  <hint>")
		b.WriteString(hint)
		b.WriteString("</hint>\n")
	}
	b.WriteString("</demandhint>")
	return b.String()
}
