package problemfile

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

// File is a parsed problem file.
type File struct {
	Path string
	Meta Meta
	Body string
}

// URLName returns the url_name from the front matter, falling back to the
// file name without extension.
func (f File) URLName() string {
	if name := strings.TrimSpace(f.Meta.URLName); name != "" {
		return name
	}
	base := path.Base(f.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// DefaultPattern matches the files LoadDirectory picks up when no pattern is
// given.
const DefaultPattern = "*.md"

// Loader reads problem files from a filesystem.
type Loader struct {
	fsys     fs.FS
	validate bool
	logger   interfaces.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithValidation toggles front matter schema validation.
func WithValidation(enabled bool) Option {
	return func(l *Loader) {
		l.validate = enabled
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader builds a loader over fsys. Validation is on by default.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{fsys: fsys, validate: true, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses a single file.
func (l *Loader) Load(ctx context.Context, name string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("problemfile read %s: %w", name, err)
	}
	meta, raw, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("problemfile %s: %w", name, err)
	}
	if l.validate {
		if err := ValidateMeta(name, raw); err != nil {
			return nil, err
		}
	}
	l.logger.Debug("problemfile.loaded", "problem_path", name, "url_name", meta.URLName)
	return &File{Path: name, Meta: meta, Body: string(body)}, nil
}

// LoadDirectory loads every file under dir whose base name matches pattern,
// sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir, pattern string) ([]*File, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("problemfile pattern %q: %w", pattern, err)
	}
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	var names []string
	err := fs.WalkDir(l.fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := path.Match(pattern, d.Name()); ok {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("problemfile walk %s: %w", root, err)
	}
	sort.Strings(names)

	files := make([]*File, 0, len(names))
	for _, name := range names {
		file, err := l.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	l.logger.Info("problemfile.directory.loaded", "dir", root, "count", len(files))
	return files, nil
}

// Load reads a single file with the default loader.
func Load(ctx context.Context, fsys fs.FS, name string) (*File, error) {
	return NewLoader(fsys).Load(ctx, name)
}

// LoadDirectory reads a directory with the default loader.
func LoadDirectory(ctx context.Context, fsys fs.FS, dir, pattern string) ([]*File, error) {
	return NewLoader(fsys).LoadDirectory(ctx, dir, pattern)
}
