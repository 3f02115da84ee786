package markup

import "strings"

// Hint is a parsed {{ ... }} annotation.
type Hint struct {
	// Label is the optional "label::" prefix.
	Label string
	// Text is the hint body with the label or compound expression removed.
	Text string
	// Selected and Unselected hold the checkbox {selected: ...} and
	// {unselected: ...} parts of Text, when present.
	Selected   string
	Unselected string
	// Compound is the expression of a {{ ((A B)) text }} hint.
	Compound string
}

func (h Hint) hasSelection() bool {
	return h.Selected != "" || h.Unselected != ""
}

// hintCursor is a small recursive-descent reader over hint text.
type hintCursor struct {
	src string
	pos int
}

func (c *hintCursor) eof() bool { return c.pos >= len(c.src) }

func (c *hintCursor) hasPrefix(prefix string) bool {
	return strings.HasPrefix(c.src[c.pos:], prefix)
}

func (c *hintCursor) skipSpace() {
	for !c.eof() && isSpaceByte(c.src[c.pos]) {
		c.pos++
	}
}

// until returns the text up to delim and moves past it.
func (c *hintCursor) until(delim string) (string, bool) {
	idx := strings.Index(c.src[c.pos:], delim)
	if idx < 0 {
		return "", false
	}
	out := c.src[c.pos : c.pos+idx]
	c.pos += idx + len(delim)
	return out, true
}

func (c *hintCursor) word() string {
	start := c.pos
	for !c.eof() && isLetter(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos]
}

func (c *hintCursor) rest() string {
	out := c.src[c.pos:]
	c.pos = len(c.src)
	return out
}

// extractHint removes the first {{ ... }} span, together with the whitespace
// in front of it, from text. ok is false when text carries no complete span.
func extractHint(text string) (hint Hint, remaining string, ok bool) {
	open := strings.Index(text, "{{")
	if open < 0 {
		return Hint{}, text, false
	}
	c := hintCursor{src: text, pos: open + 2}
	body, closed := c.until("}}")
	if !closed {
		return Hint{}, text, false
	}
	start := open
	for start > 0 && isSpaceByte(text[start-1]) {
		start--
	}
	return parseHintBody(body), text[:start] + text[c.pos:], true
}

// parseHintBody reads: body = compound | labelled
//
//	compound = "((" expr "))" text
//	labelled = [ label "::" ] text
func parseHintBody(body string) Hint {
	c := hintCursor{src: strings.TrimSpace(body)}
	if c.hasPrefix("((") {
		c.pos += 2
		if expr, ok := c.until("))"); ok {
			text := strings.ReplaceAll(strings.TrimSpace(c.rest()), "&lf;", "\n")
			return Hint{Compound: strings.TrimSpace(expr), Text: text}
		}
		c.pos = 0
	}
	var hint Hint
	if label, ok := c.until("::"); ok {
		hint.Label = strings.TrimSpace(label)
	}
	hint.Text = strings.TrimSpace(c.rest())
	hint.Selected, hint.Unselected = parseSelection(hint.Text)
	return hint
}

// parseSelection reads the checkbox form "{selected: a}, {unselected: b}".
// The outer braces of the hint are re-added so the first and last parts
// parse like the middle ones. Keys are case-insensitive; "s" and "u" are
// accepted as short forms. The first occurrence of each key wins.
func parseSelection(text string) (selected, unselected string) {
	c := hintCursor{src: "{" + text + "}"}
	var haveSelected, haveUnselected bool
	for !c.eof() {
		if _, ok := c.until("{"); !ok {
			break
		}
		for !c.eof() && (c.src[c.pos] == '{' || isSpaceByte(c.src[c.pos])) {
			c.pos++
		}
		key := strings.ToLower(c.word())
		c.skipSpace()
		if !c.hasPrefix(":") {
			continue
		}
		c.pos++
		value, ok := c.until("}")
		if !ok {
			break
		}
		value = strings.TrimSpace(value)
		switch key {
		case "s", "selected":
			if !haveSelected {
				selected, haveSelected = value, true
			}
		case "u", "unselected":
			if !haveUnselected {
				unselected, haveUnselected = value, true
			}
		}
	}
	return selected, unselected
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
