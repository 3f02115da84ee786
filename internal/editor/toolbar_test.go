package editor

import (
	"errors"
	"testing"
)

func TestToolbarTemplates(t *testing.T) {
	toolbar := NewToolbar(Templates{})
	cases := map[Action]string{
		ActionMultipleChoice: "( ) incorrect\n( ) incorrect\n(x) correct\n",
		ActionCheckbox:       "[x] correct\n[ ] incorrect\n[x] correct\n",
		ActionString:         "= answer\n",
		ActionNumber:         "= answer +- 0.001%\n",
		ActionSelect:         "[[incorrect, (correct), incorrect]]\n",
		ActionHeader:         "Header\n=====\n",
		ActionExplanation:    "[explanation]\nShort explanation\n[explanation]\n",
	}
	for action, want := range cases {
		got, err := toolbar.Insert(action, "")
		if err != nil {
			t.Fatalf("Insert(%s) returned error: %v", action, err)
		}
		if got != want {
			t.Fatalf("Insert(%s) = %q, want %q", action, got, want)
		}
	}
}

func TestToolbarLocalisedTemplates(t *testing.T) {
	toolbar := NewToolbar(Templates{Correct: "richtig", Incorrect: "falsch"})
	got, err := toolbar.Template(ActionSelect)
	if err != nil {
		t.Fatalf("Template returned error: %v", err)
	}
	if got != "[[falsch, (richtig), falsch]]\n" {
		t.Fatalf("unexpected template %q", got)
	}
	answer, _ := toolbar.Template(ActionString)
	if answer != "= answer\n" {
		t.Fatalf("expected default answer word, got %q", answer)
	}
}

func TestToolbarWrapsSelection(t *testing.T) {
	toolbar := NewToolbar(DefaultTemplates())
	cases := []struct {
		action    Action
		selection string
		want      string
	}{
		{ActionString, "Paris", "= Paris"},
		{ActionNumber, "42", "= 42"},
		{ActionSelect, "a, (b)", "[[a, (b)]]"},
		{ActionHeader, "Title", "Title\n====\n"},
		{ActionExplanation, "Because", "[explanation]\nBecause\n[explanation]"},
	}
	for _, tc := range cases {
		got, err := toolbar.Insert(tc.action, tc.selection)
		if err != nil {
			t.Fatalf("Insert(%s) returned error: %v", tc.action, err)
		}
		if got != tc.want {
			t.Fatalf("Insert(%s, %q) = %q, want %q", tc.action, tc.selection, got, tc.want)
		}
	}
}

func TestToolbarChoiceListHonoursStrayCorrectMarker(t *testing.T) {
	toolbar := NewToolbar(DefaultTemplates())

	got, err := toolbar.Insert(ActionMultipleChoice, "red\n\n\nx green\n X  blue\nxylophone\n")
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	want := "( ) red\n(x) green\n(x) blue\n( ) xylophone\n"
	if got != want {
		t.Fatalf("unexpected choices\nwant: %q\ngot:  %q", want, got)
	}

	got, _ = toolbar.Insert(ActionCheckbox, "x one\ntwo")
	if got != "[x] one\n[ ] two\n" {
		t.Fatalf("unexpected checkbox choices %q", got)
	}
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction(" Dropdown ")
	if err != nil || action != ActionSelect {
		t.Fatalf("ParseAction = (%q, %v)", action, err)
	}
	if _, err := ParseAction("table"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if _, err := NewToolbar(Templates{}).Insert(Action("table"), "x"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction from Insert, got %v", err)
	}
}
