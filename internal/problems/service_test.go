package problems_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-capa/internal/identity"
	"github.com/goliatone/go-capa/internal/markup"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/google/uuid"
)

func newTestService(t *testing.T) problems.Service {
	t.Helper()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return problems.NewService(
		problems.NewMemoryProblemRepository(),
		markup.NewConverter(),
		problems.WithNow(func() time.Time { return now }),
	)
}

func TestServiceSaveMarkdownConvertsAndStores(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	problem, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{
		URLName:     "capital",
		DisplayName: "Capital",
		Markdown:    "Capital of France?\n= Paris\n",
	})
	if err != nil {
		t.Fatalf("save markdown: %v", err)
	}
	if problem.ID != identity.ProblemUUID("capital") {
		t.Fatalf("expected deterministic id, got %s", problem.ID)
	}
	if problem.Markdown == nil || *problem.Markdown != "Capital of France?\n= Paris\n" {
		t.Fatalf("unexpected markdown %v", problem.Markdown)
	}
	if !strings.Contains(problem.XML, `<stringresponse answer="Paris" type="ci">`) {
		t.Fatalf("expected converted xml, got %q", problem.XML)
	}
	if !problem.CreatedAt.Equal(problem.UpdatedAt) {
		t.Fatalf("expected timestamps to match on create")
	}
}

func TestServiceSaveXMLClearsMarkdown(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{URLName: "switch", Markdown: "Pick\n(x) a\n( ) b\n"})
	if err != nil {
		t.Fatalf("save markdown: %v", err)
	}
	second, err := svc.SaveXML(ctx, problems.SaveXMLInput{URLName: "switch", XML: "<problem/>"})
	if err != nil {
		t.Fatalf("save xml: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to keep id %s, got %s", first.ID, second.ID)
	}
	if !second.Advanced() || second.XML != "<problem/>" {
		t.Fatalf("unexpected advanced record %+v", second)
	}
	if second.DisplayName != "switch" {
		t.Fatalf("expected display name to default to url name, got %q", second.DisplayName)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one problem, got %d", len(all))
	}
}

func TestServiceDerivesURLNameFromDisplayName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	problem, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{DisplayName: "Unit Circle", Markdown: "= 1"})
	if err != nil {
		t.Fatalf("save markdown: %v", err)
	}
	if problem.URLName == "" || strings.ContainsAny(problem.URLName, " U") {
		t.Fatalf("expected normalised url name, got %q", problem.URLName)
	}
	fetched, err := svc.GetByURLName(ctx, problem.URLName)
	if err != nil {
		t.Fatalf("get by url name: %v", err)
	}
	if fetched.ID != problem.ID {
		t.Fatalf("expected %s, got %s", problem.ID, fetched.ID)
	}
}

func TestServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{Markdown: "x"}); !errors.Is(err, problems.ErrURLNameRequired) {
		t.Fatalf("expected ErrURLNameRequired, got %v", err)
	}
	if _, err := svc.SaveXML(ctx, problems.SaveXMLInput{URLName: "empty", XML: "  "}); !errors.Is(err, problems.ErrXMLRequired) {
		t.Fatalf("expected ErrXMLRequired, got %v", err)
	}
	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, problems.ErrProblemNotFound) {
		t.Fatalf("expected ErrProblemNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New()); !errors.Is(err, problems.ErrProblemNotFound) {
		t.Fatalf("expected ErrProblemNotFound on delete, got %v", err)
	}
}

func TestNewServicePanicsWithoutRepository(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	problems.NewService(nil, markup.NewConverter())
}
