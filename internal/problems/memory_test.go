package problems_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-capa/internal/identity"
	"github.com/goliatone/go-capa/internal/problems"
)

func TestMemoryProblemRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := problems.NewMemoryProblemRepository()

	markdown := "Question?\n= 4\n"
	created, err := repo.Create(ctx, &problems.Problem{
		ID:          identity.ProblemUUID("arith"),
		URLName:     "arith",
		DisplayName: "Arithmetic",
		Markdown:    &markdown,
		XML:         "<problem></problem>",
		Metadata:    map[string]any{"weight": 1},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	*created.Markdown = "mutated"
	created.Metadata["weight"] = 9

	fetched, err := repo.GetByURLName(ctx, "arith")
	if err != nil {
		t.Fatalf("get by url name: %v", err)
	}
	if fetched.Markdown == nil || *fetched.Markdown != markdown {
		t.Fatalf("expected stored markdown to be isolated from caller, got %v", fetched.Markdown)
	}
	if fetched.Metadata["weight"] != 1 {
		t.Fatalf("expected stored metadata to be isolated from caller, got %v", fetched.Metadata)
	}

	fetched.URLName = "arithmetic"
	fetched.Markdown = nil
	if _, err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.GetByURLName(ctx, "arith"); err == nil {
		t.Fatal("expected old url name to be released")
	}
	renamed, err := repo.GetByID(ctx, fetched.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if renamed.URLName != "arithmetic" || !renamed.Advanced() {
		t.Fatalf("unexpected record after update: %+v", renamed)
	}

	if err := repo.Delete(ctx, fetched.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var nf *problems.NotFoundError
	if _, err := repo.GetByID(ctx, fetched.ID); !errors.As(err, &nf) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := repo.Delete(ctx, fetched.ID); !errors.As(err, &nf) {
		t.Fatalf("expected not found error on second delete, got %v", err)
	}
}

func TestMemoryProblemRepositoryListIsOrdered(t *testing.T) {
	ctx := context.Background()
	repo := problems.NewMemoryProblemRepository()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := repo.Create(ctx, &problems.Problem{ID: identity.ProblemUUID(name), URLName: name, XML: "<problem/>"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 || records[0].URLName != "alpha" || records[1].URLName != "mid" || records[2].URLName != "zeta" {
		t.Fatalf("unexpected order: %+v", records)
	}
}

func TestMemoryProblemRepositoryUpdateMissing(t *testing.T) {
	repo := problems.NewMemoryProblemRepository()
	_, err := repo.Update(context.Background(), &problems.Problem{ID: identity.ProblemUUID("missing"), URLName: "missing"})
	var nf *problems.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if nf.Resource != "problem" {
		t.Fatalf("unexpected resource %q", nf.Resource)
	}
}
