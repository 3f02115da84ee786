package problemfile_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-capa/internal/problemfile"
)

func TestLoadParsesFrontMatter(t *testing.T) {
	file, err := problemfile.Load(context.Background(), os.DirFS("testdata"), "problems/capital.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if file.Meta.DisplayName != "Capital cities" || file.URLName() != "capital" {
		t.Fatalf("unexpected meta %+v", file.Meta)
	}
	if file.Meta.MaxAttempts == nil || *file.Meta.MaxAttempts != 3 {
		t.Fatalf("expected max_attempts 3, got %v", file.Meta.MaxAttempts)
	}
	if file.Meta.Weight == nil || *file.Meta.Weight != 1.5 {
		t.Fatalf("expected weight 1.5, got %v", file.Meta.Weight)
	}
	if !strings.HasPrefix(file.Body, "What is the capital of France?\n= Paris") {
		t.Fatalf("unexpected body %q", file.Body)
	}

	metadata := file.Meta.Metadata()
	if metadata["course"] != "intro" || metadata["showanswer"] != "finished" || metadata["max_attempts"] != 3 {
		t.Fatalf("unexpected metadata %#v", metadata)
	}
}

func TestLoadWithoutFrontMatterUsesFileName(t *testing.T) {
	file, err := problemfile.Load(context.Background(), os.DirFS("testdata"), "problems/nested/circle.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if file.URLName() != "circle" {
		t.Fatalf("expected url name from file name, got %q", file.URLName())
	}
	if !strings.Contains(file.Body, "= 3.14 +- 0.01") {
		t.Fatalf("unexpected body %q", file.Body)
	}
}

func TestLoadDirectorySortsAndFilters(t *testing.T) {
	files, err := problemfile.LoadDirectory(context.Background(), os.DirFS("testdata"), "problems", "")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != "problems/capital.md" || files[1].Path != "problems/nested/circle.md" {
		t.Fatalf("unexpected order %s, %s", files[0].Path, files[1].Path)
	}
}

func TestLoadReportsSchemaIssues(t *testing.T) {
	_, err := problemfile.Load(context.Background(), os.DirFS("testdata"), "invalid.md")
	if !errors.Is(err, problemfile.ErrInvalidMeta) {
		t.Fatalf("expected ErrInvalidMeta, got %v", err)
	}
	var verr *problemfile.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "invalid.md" || len(verr.Issues) < 2 {
		t.Fatalf("expected issues for both fields, got %+v", verr)
	}
}

func TestLoadSkipsValidationWhenDisabled(t *testing.T) {
	loader := problemfile.NewLoader(os.DirFS("testdata"), problemfile.WithValidation(false))
	file, err := loader.Load(context.Background(), "invalid.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if file.Meta.ShowAnswer != "sometimes" {
		t.Fatalf("unexpected meta %+v", file.Meta)
	}
}

func TestLoadDirectoryCustomPattern(t *testing.T) {
	fsys := fstest.MapFS{
		"set/a.problem": {Data: []byte("= 1\n")},
		"set/b.md":      {Data: []byte("= 2\n")},
	}
	files, err := problemfile.LoadDirectory(context.Background(), fsys, "set", "*.problem")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(files) != 1 || files[0].URLName() != "a" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := problemfile.Load(ctx, os.DirFS("testdata"), "problems/capital.md"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
