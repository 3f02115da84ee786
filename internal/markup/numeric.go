package markup

import (
	"strings"
	"unicode"
)

// numericAnswer reports whether an answer should produce a numerical
// response: it starts with a number the way a lenient float parser reads
// one, is an arithmetic expression, or is a two-endpoint range.
func numericAnswer(answer string) bool {
	if isRange(answer) || hasNumericPrefix(answer) {
		return true
	}
	value, _, _ := splitTolerance(answer)
	return isArithmetic(value)
}

// plainNumeric is the stricter test applied to "or=" alternatives: ranges and
// values carrying a tolerance are rejected.
func plainNumeric(answer string) bool {
	if isRange(answer) || strings.Contains(answer, "+-") {
		return false
	}
	return hasNumericPrefix(answer) || isArithmetic(stripSpace(answer))
}

// isRange reports whether answer is bracketed by [ or ( and ] or ) with a
// comma separating two endpoints at the outer level.
func isRange(answer string) bool {
	answer = strings.TrimSpace(answer)
	if len(answer) < 3 {
		return false
	}
	if first := answer[0]; first != '[' && first != '(' {
		return false
	}
	if last := answer[len(answer)-1]; last != ']' && last != ')' {
		return false
	}
	depth := 0
	for _, r := range answer[1 : len(answer)-1] {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// splitTolerance splits "value +- tolerance". The value has all whitespace
// removed; ok is false when there is no tolerance marker.
func splitTolerance(answer string) (value, tolerance string, ok bool) {
	idx := strings.Index(answer, "+-")
	if idx < 0 {
		return stripSpace(answer), "", false
	}
	return stripSpace(answer[:idx]), strings.TrimSpace(answer[idx+2:]), true
}

// hasNumericPrefix mirrors the leading-number scan of a lenient float parser:
// optional whitespace and sign, then "Infinity" or a decimal literal with at
// least one digit. Trailing text is ignored.
func hasNumericPrefix(text string) bool {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if strings.HasPrefix(s, "Infinity") {
		return true
	}
	digits := 0
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	return digits > 0
}

// isArithmetic reports whether expr is built only from numbers, the
// operators + - * / ^ and parentheses. Whitespace must already be removed.
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = [ "+" | "-" ] power
//	power  = primary [ "^" unary ]
//	primary = number | "(" expr ")"
func isArithmetic(expr string) bool {
	if expr == "" {
		return false
	}
	p := arithParser{src: expr}
	return p.expr() && p.pos == len(p.src)
}

type arithParser struct {
	src string
	pos int
}

func (p *arithParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *arithParser) expr() bool {
	if !p.term() {
		return false
	}
	for c := p.peek(); c == '+' || c == '-'; c = p.peek() {
		p.pos++
		if !p.term() {
			return false
		}
	}
	return true
}

func (p *arithParser) term() bool {
	if !p.unary() {
		return false
	}
	for c := p.peek(); c == '*' || c == '/'; c = p.peek() {
		p.pos++
		if !p.unary() {
			return false
		}
	}
	return true
}

func (p *arithParser) unary() bool {
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	if !p.primary() {
		return false
	}
	if p.peek() == '^' {
		p.pos++
		return p.unary()
	}
	return true
}

func (p *arithParser) primary() bool {
	if p.peek() == '(' {
		p.pos++
		if !p.expr() || p.peek() != ')' {
			return false
		}
		p.pos++
		return true
	}
	return p.number()
}

func (p *arithParser) number() bool {
	digits := 0
	for isDigit(p.peek()) {
		p.pos++
		digits++
	}
	if p.peek() == '.' {
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		save := p.pos
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			p.pos = save
			return true
		}
		for isDigit(p.peek()) {
			p.pos++
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
