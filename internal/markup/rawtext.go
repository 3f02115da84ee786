package markup

import (
	"regexp"
	"strings"
)

var rawTextOpen = regexp.MustCompile(`(?i)<(script|style|textarea|title)\b[^>]*>`)

// freezeRawText marks lines inside script, style, textarea and title
// elements as markup, so no rule rewrites their bodies. Lines holding the
// opening or closing tag are frozen too.
func freezeRawText(seg *segment) {
	closing := ""
	for i, l := range seg.lines {
		if !l.isSource() {
			continue
		}
		lower := strings.ToLower(l.text)
		frozen := closing != ""
		for pos := 0; pos <= len(lower); {
			if closing != "" {
				end := strings.Index(lower[pos:], closing)
				if end < 0 {
					break
				}
				pos += end + len(closing)
				closing = ""
				continue
			}
			open := rawTextOpen.FindStringSubmatchIndex(lower[pos:])
			if open == nil {
				break
			}
			frozen = true
			closing = "</" + lower[pos+open[2]:pos+open[3]] + ">"
			pos += open[1]
		}
		if frozen {
			seg.lines[i].kind = kindMarkup
		}
	}
}
