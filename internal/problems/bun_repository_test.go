package problems_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-capa/internal/identity"
	"github.com/goliatone/go-capa/internal/markup"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestProblemRepository_WithBunAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newProblemDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	repo := problems.NewBunProblemRepositoryWithCache(bunDB, cacheSvc, keySerializer)
	svc := problems.NewService(repo, markup.NewConverter(), problems.WithNow(func() time.Time { return now }))

	created, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{
		URLName:     "bun-cached-numeric",
		DisplayName: "Numeric",
		Markdown:    "How much?\n= 100 +- 5\n",
		Metadata:    map[string]any{"weight": 2},
	})
	if err != nil {
		t.Fatalf("save markdown: %v", err)
	}
	if created.ID != identity.ProblemUUID("bun-cached-numeric") {
		t.Fatalf("expected deterministic id, got %s", created.ID)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	cached, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if cached.Markdown == nil || *cached.Markdown != "How much?\n= 100 +- 5\n" {
		t.Fatalf("unexpected markdown %v", cached.Markdown)
	}

	if _, err := svc.SaveXML(ctx, problems.SaveXMLInput{
		URLName:     "bun-cached-numeric",
		DisplayName: "Numeric (advanced)",
		XML:         "<problem><p>edited</p></problem>",
	}); err != nil {
		t.Fatalf("save xml: %v", err)
	}

	updated, err := svc.GetByURLName(ctx, "bun-cached-numeric")
	if err != nil {
		t.Fatalf("get updated: %v", err)
	}
	if !updated.Advanced() {
		t.Fatalf("expected markdown to be cleared, got %v", updated.Markdown)
	}
	if updated.XML != "<problem><p>edited</p></problem>" || updated.DisplayName != "Numeric (advanced)" {
		t.Fatalf("unexpected record after update: %+v", updated)
	}
}

func TestBunProblemRepositoryDeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := problems.NewBunProblemRepository(newProblemDB(t))

	names := []string{"bun-list-b", "bun-list-a"}
	for _, name := range names {
		if _, err := repo.Create(ctx, &problems.Problem{
			ID:          identity.ProblemUUID(name),
			URLName:     name,
			DisplayName: name,
			XML:         "<problem/>",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var seen []string
	for _, record := range records {
		if record.URLName == "bun-list-a" || record.URLName == "bun-list-b" {
			seen = append(seen, record.URLName)
		}
	}
	if len(seen) != 2 || seen[0] != "bun-list-a" {
		t.Fatalf("expected ordered records, got %v", seen)
	}

	id := identity.ProblemUUID("bun-list-a")
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var nf *problems.NotFoundError
	if _, err := repo.GetByID(ctx, id); !errors.As(err, &nf) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := repo.GetByURLName(ctx, "bun-list-missing"); !errors.As(err, &nf) {
		t.Fatalf("expected not found for unknown url name, got %v", err)
	}
}

func newProblemDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if _, err := bunDB.NewCreateTable().Model((*problems.Problem)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return bunDB
}
