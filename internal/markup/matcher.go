package markup

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

type span struct {
	start  int
	end    int
	groups []string
}

type matcher interface {
	findAll(text string) []span
}

type stdMatcher struct {
	re *regexp.Regexp
}

func (m stdMatcher) findAll(text string) []span {
	indexes := m.re.FindAllStringSubmatchIndex(text, -1)
	out := make([]span, 0, len(indexes))
	for _, idx := range indexes {
		groups := make([]string, len(idx)/2)
		for g := range groups {
			if idx[2*g] >= 0 {
				groups[g] = text[idx[2*g]:idx[2*g+1]]
			}
		}
		out = append(out, span{start: idx[0], end: idx[1], groups: groups})
	}
	return out
}

// lookMatcher wraps a regexp2 expression for single-line rules that need
// lookahead.
type lookMatcher struct {
	re *regexp2.Regexp
}

func newLookMatcher(pattern string, opts regexp2.RegexOptions) lookMatcher {
	return lookMatcher{re: regexp2.MustCompile(pattern, opts)}
}

func (m lookMatcher) matchString(text string) bool {
	ok, err := m.re.MatchString(text)
	return err == nil && ok
}
