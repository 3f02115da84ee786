package markup

import (
	"regexp"
	"strings"
)

var codeRule = stdMatcher{re: regexp.MustCompile(`(?is)\[code\]\n?(.*?)\[/?code\]`)}

// applyCode turns [code] blocks into preformatted markup. It runs before every
// other rule, so the contents are kept verbatim.
func applyCode(seg *segment) {
	seg.lines = replaceSource(seg.lines, codeRule, func(groups []string) []line {
		return markupLines("<pre><code>" + strings.TrimSuffix(groups[1], "\n") + "</code></pre>")
	})
}
