package markup

import (
	"regexp"
	"strings"
)

var labelRule = stdMatcher{re: regexp.MustCompile(`(?s)>>(.+?)<<`)}

// applyLabels turns >>label||description<< into a <label> element and an
// optional <description>. Only the first "||" separates the two parts.
func applyLabels(seg *segment) {
	seg.lines = replaceSource(seg.lines, labelRule, func(groups []string) []line {
		return markupLines(labelMarkup(groups[1]))
	})
}

// renderLabels converts every label inside text, leaving the rest as is.
func renderLabels(text string) string {
	return labelRule.re.ReplaceAllStringFunc(text, func(found string) string {
		return labelMarkup(labelRule.re.FindStringSubmatch(found)[1])
	})
}

func labelMarkup(body string) string {
	parts := strings.SplitN(body, "||", 2)
	out := "<label>" + strings.TrimSpace(parts[0]) + "</label>"
	if len(parts) == 2 {
		if desc := strings.TrimSpace(parts[1]); desc != "" {
			out += "\n<description>" + desc + "</description>"
		}
	}
	return out
}
