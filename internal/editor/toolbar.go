package editor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Action identifies a toolbar button.
type Action string

const (
	ActionMultipleChoice Action = "multiple-choice"
	ActionCheckbox       Action = "checkbox"
	ActionString         Action = "string"
	ActionNumber         Action = "number"
	ActionSelect         Action = "dropdown"
	ActionHeader         Action = "header"
	ActionExplanation    Action = "explanation"
)

// Actions lists every toolbar action in button order.
var Actions = []Action{
	ActionMultipleChoice,
	ActionCheckbox,
	ActionString,
	ActionNumber,
	ActionSelect,
	ActionHeader,
	ActionExplanation,
}

// ErrUnknownAction is returned for an action the toolbar does not offer.
var ErrUnknownAction = errors.New("editor: unknown toolbar action")

// ParseAction maps a button name onto an Action.
func ParseAction(name string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(name)))
	if !lo.Contains(Actions, action) {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return action, nil
}

// Templates holds the localisable words used by the toolbar snippets.
type Templates struct {
	Correct          string
	Incorrect        string
	Answer           string
	Header           string
	ShortExplanation string
}

// DefaultTemplates returns the English toolbar words.
func DefaultTemplates() Templates {
	return Templates{
		Correct:          "correct",
		Incorrect:        "incorrect",
		Answer:           "answer",
		Header:           "Header",
		ShortExplanation: "Short explanation",
	}
}

func (t Templates) withDefaults() Templates {
	defaults := DefaultTemplates()
	return Templates{
		Correct:          lo.CoalesceOrEmpty(t.Correct, defaults.Correct),
		Incorrect:        lo.CoalesceOrEmpty(t.Incorrect, defaults.Incorrect),
		Answer:           lo.CoalesceOrEmpty(t.Answer, defaults.Answer),
		Header:           lo.CoalesceOrEmpty(t.Header, defaults.Header),
		ShortExplanation: lo.CoalesceOrEmpty(t.ShortExplanation, defaults.ShortExplanation),
	}
}

// Toolbar produces the markdown snippets inserted by the editor buttons.
type Toolbar struct {
	templates Templates
}

// NewToolbar builds a toolbar. Empty template words fall back to English.
func NewToolbar(templates Templates) Toolbar {
	return Toolbar{templates: templates.withDefaults()}
}

// Template returns the snippet inserted when nothing is selected.
func (t Toolbar) Template(action Action) (string, error) {
	w := t.templates
	switch action {
	case ActionMultipleChoice:
		return "( ) " + w.Incorrect + "\n( ) " + w.Incorrect + "\n(x) " + w.Correct + "\n", nil
	case ActionCheckbox:
		return "[x] " + w.Correct + "\n[ ] " + w.Incorrect + "\n[x] " + w.Correct + "\n", nil
	case ActionString:
		return "= " + w.Answer + "\n", nil
	case ActionNumber:
		return "= " + w.Answer + " +- 0.001%\n", nil
	case ActionSelect:
		return "[[" + w.Incorrect + ", (" + w.Correct + "), " + w.Incorrect + "]]\n", nil
	case ActionHeader:
		return w.Header + "\n=====\n", nil
	case ActionExplanation:
		return "[explanation]\n" + w.ShortExplanation + "\n[explanation]\n", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// Insert returns the replacement for selection. An empty selection yields
// the action's template; otherwise the selection is wrapped.
func (t Toolbar) Insert(action Action, selection string) (string, error) {
	if selection == "" {
		return t.Template(action)
	}
	switch action {
	case ActionMultipleChoice:
		return choiceList(selection, "(", ")"), nil
	case ActionCheckbox:
		return choiceList(selection, "[", "]"), nil
	case ActionString, ActionNumber:
		return "= " + selection, nil
	case ActionSelect:
		return "[[" + selection + "]]", nil
	case ActionHeader:
		return selection + "\n====\n", nil
	case ActionExplanation:
		return "[explanation]\n" + selection + "\n[explanation]", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

var (
	blankLines   = regexp.MustCompile(`\n+`)
	strayCorrect = regexp.MustCompile(`(?i)^\s*x\s+(\S)`)
)

// choiceList turns selected lines into choices, one per line. A stand-alone
// x in front of the text marks that choice correct.
func choiceList(selection, open, close string) string {
	cleaned := strings.TrimSuffix(blankLines.ReplaceAllString(selection, "\n"), "\n")
	lines := lo.Map(strings.Split(cleaned, "\n"), func(line string, _ int) string {
		marker := " "
		if strayCorrect.MatchString(line) {
			line = strayCorrect.ReplaceAllString(line, "$1")
			marker = "x"
		}
		return open + marker + close + " " + line + "\n"
	})
	return strings.Join(lines, "")
}
