package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var responseTypes = map[string]bool{
	"optionresponse":         true,
	"multiplechoiceresponse": true,
	"choiceresponse":         true,
	"numericalresponse":      true,
	"stringresponse":         true,
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true, atom.Source: true,
	atom.Track: true, atom.Wbr: true,
}

var errUnbalanced = errors.New("markup: unbalanced elements")

// topNode is a top-level element or non-blank text run of a fragment,
// recorded as byte offsets.
type topNode struct {
	name       string
	start      int
	end        int
	openEnd    int
	closeStart int
	firstChild int
}

type fragmentScan struct {
	nodes     []topNode
	responses []string
	nested    bool
}

func isVoid(name string) bool {
	return voidElements[atom.Lookup([]byte(name))]
}

// scanFragment tokenizes fragment and records its top-level nodes. Offsets
// are accumulated from the raw length of every token, so they index the
// original text exactly.
func scanFragment(fragment string) (fragmentScan, error) {
	var (
		scan   fragmentScan
		stack  []string
		offset int
	)
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())
		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return scan, z.Err()
			}
			if len(stack) > 0 {
				return scan, fmt.Errorf("%w: <%s> is never closed", errUnbalanced, stack[len(stack)-1])
			}
			return scan, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			raw, _ := z.TagName()
			name := string(raw)
			if responseTypes[name] {
				scan.responses = append(scan.responses, name)
				if len(stack) > 0 {
					scan.nested = true
				}
			}
			if len(stack) == 1 {
				if top := &scan.nodes[len(scan.nodes)-1]; top.firstChild < 0 {
					top.firstChild = start
				}
			}
			if tt == html.SelfClosingTagToken || isVoid(name) {
				if len(stack) == 0 {
					scan.nodes = append(scan.nodes, topNode{name: name, start: start, end: offset, openEnd: offset, closeStart: offset, firstChild: -1})
				}
				continue
			}
			if len(stack) == 0 {
				scan.nodes = append(scan.nodes, topNode{name: name, start: start, openEnd: offset, firstChild: -1})
			}
			stack = append(stack, name)
		case html.EndTagToken:
			raw, _ := z.TagName()
			name := string(raw)
			if isVoid(name) {
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1] != name {
				return scan, fmt.Errorf("%w: unexpected </%s>", errUnbalanced, name)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				top := &scan.nodes[len(scan.nodes)-1]
				top.closeStart = start
				top.end = offset
			}
		default:
			if len(stack) == 0 && strings.TrimSpace(fragment[start:offset]) != "" {
				scan.nodes = append(scan.nodes, topNode{start: start, end: offset, firstChild: -1})
			}
		}
	}
}

// reassembleSegment makes the single response element of a fragment the
// parent of everything else: siblings before it move in front of its first
// child element, siblings after it are appended. Fragments with no response,
// several responses, a nested response or unbalanced markup are returned
// unchanged.
func reassembleSegment(seg *segment, fragment string) string {
	scan, err := scanFragment(fragment)
	seg.report.ResponseTypes = scan.responses
	switch {
	case err != nil:
		seg.diag(DiagnosticMalformedMarkup, err.Error())
		return fragment
	case len(scan.responses) == 0:
		seg.diag(DiagnosticNoResponse, "")
		return fragment
	case len(scan.responses) > 1:
		seg.diag(DiagnosticMultipleResponses, strings.Join(scan.responses, ", "))
		return fragment
	case scan.nested:
		seg.diag(DiagnosticNestedResponse, scan.responses[0])
		return fragment
	}

	r := -1
	for i, node := range scan.nodes {
		if responseTypes[node.name] {
			r = i
			break
		}
	}
	if r < 0 {
		seg.diag(DiagnosticNestedResponse, scan.responses[0])
		return fragment
	}
	resp := scan.nodes[r]

	var b strings.Builder
	b.WriteString(fragment[resp.start:resp.openEnd])
	b.WriteByte('\n')
	for _, node := range scan.nodes[:r] {
		b.WriteString(strings.TrimSpace(fragment[node.start:node.end]))
		b.WriteByte('\n')
	}
	if resp.firstChild < 0 {
		if text := strings.TrimSpace(fragment[resp.openEnd:resp.closeStart]); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
	} else {
		lead := fragment[resp.openEnd:resp.firstChild]
		indent := lead[strings.LastIndexByte(lead, '\n')+1:]
		if text := strings.TrimSpace(lead); text != "" {
			b.WriteString(text)
			b.WriteByte('\n')
		}
		if strings.TrimSpace(indent) != "" {
			indent = ""
		}
		b.WriteString(indent)
		b.WriteString(strings.TrimRightFunc(fragment[resp.firstChild:resp.closeStart], unicode.IsSpace))
		b.WriteByte('\n')
	}
	for _, node := range scan.nodes[r+1:] {
		b.WriteString(strings.TrimSpace(fragment[node.start:node.end]))
		b.WriteByte('\n')
	}
	b.WriteString(fragment[resp.closeStart:resp.end])
	seg.report.Wrapped = true
	return b.String()
}
