package di

import (
	"context"
	"io/fs"
	"strings"
	"time"

	problemscmd "github.com/goliatone/go-capa/internal/commands/problems"
	"github.com/goliatone/go-capa/internal/editor"
	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/internal/logging/console"
	"github.com/goliatone/go-capa/internal/logging/gologger"
	"github.com/goliatone/go-capa/internal/markup"
	"github.com/goliatone/go-capa/internal/problemfile"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/internal/runtimeconfig"
	"github.com/goliatone/go-capa/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	converter   *markup.Converter
	toolbar     editor.Toolbar
	problemRepo problems.ProblemRepository
	problemSvc  problems.Service
	activity    interfaces.ActivitySink
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB supplies an open database instead of opening one from the
// storage configuration.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the provider selected from the logging configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithProblemRepository overrides the problem repository.
func WithProblemRepository(repo problems.ProblemRepository) Option {
	return func(c *Container) {
		c.problemRepo = repo
	}
}

// WithActivitySink forwards problem changes to sink as activity records.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activity = sink
	}
}

// WithProblemService overrides the problem service.
func WithProblemService(svc problems.Service) Option {
	return func(c *Container) {
		c.problemSvc = svc
	}
}

// NewContainer validates cfg and builds the module graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureConverter()
	if err := c.configureStorage(context.Background()); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	if c.problemSvc == nil {
		c.problemSvc = problems.NewService(
			c.problemRepo,
			c.converter,
			problems.WithLogger(logging.ProblemsLogger(c.loggerProvider)),
			problems.WithActivitySink(c.activity),
		)
	}

	logging.ModuleLogger(c.loggerProvider, "capa").Debug("container.configured",
		"storage", c.Config.StorageProvider(),
		"cache", c.cacheService != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level := strings.TrimSpace(c.Config.Logging.Level); level != "" {
			if parsed, err := console.ParseLevel(level); err == nil {
				opts.MinLevel = &parsed
			}
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureConverter() {
	var convertOpts []markup.Option
	if label := strings.TrimSpace(c.Config.Editor.ExplanationLabel); label != "" {
		convertOpts = append(convertOpts, markup.WithExplanationLabel(label))
	}
	c.converter = markup.NewConverter(
		markup.WithLogger(logging.MarkupLogger(c.loggerProvider)),
		markup.WithOptions(convertOpts...),
	)
	templates := c.Config.Editor.Templates
	c.toolbar = editor.NewToolbar(editor.Templates{
		Correct:          templates.Correct,
		Incorrect:        templates.Incorrect,
		Answer:           templates.Answer,
		Header:           templates.Header,
		ShortExplanation: templates.ShortExplanation,
	})
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.CacheEnabled() || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.problemRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.problemRepo = problems.NewBunProblemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.problemRepo = problems.NewMemoryProblemRepository()
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Converter returns the markdown converter.
func (c *Container) Converter() *markup.Converter {
	return c.converter
}

// Toolbar returns the editor toolbar built from the configured templates.
func (c *Container) Toolbar() editor.Toolbar {
	return c.toolbar
}

// ProblemRepository returns the problem repository.
func (c *Container) ProblemRepository() problems.ProblemRepository {
	return c.problemRepo
}

// ProblemService returns the problem service.
func (c *Container) ProblemService() problems.Service {
	return c.problemSvc
}

// BunDB returns the database handle, nil for in-memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// ProblemFileLoader returns a loader over fsys honouring the metadata settings.
func (c *Container) ProblemFileLoader(fsys fs.FS) *problemfile.Loader {
	return problemfile.NewLoader(fsys,
		problemfile.WithValidation(c.Config.Metadata.ValidateSchema),
		problemfile.WithLogger(logging.ProblemFileLogger(c.loggerProvider)),
	)
}

// OpenSession starts an editor session on problem. When the configuration
// requires confirmation and confirmer is nil, switching to advanced mode is
// declined.
func (c *Container) OpenSession(problem *problems.Problem, confirmer editor.Confirmer) *editor.Session {
	opts := []editor.Option{editor.WithLogger(logging.EditorLogger(c.loggerProvider))}
	if c.Config.Editor.RequireConfirmation {
		if confirmer == nil {
			confirmer = editor.ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
		}
		opts = append(opts, editor.WithConfirmer(confirmer))
	}
	var (
		markdown *string
		xml      string
	)
	if problem != nil {
		markdown = problem.Markdown
		xml = problem.XML
	} else {
		empty := ""
		markdown = &empty
	}
	return editor.NewSession(c.converter, markdown, xml, opts...)
}

// Commands builds the problem command handlers. Imports read from fsys,
// which may be nil when no imports are expected.
func (c *Container) Commands(fsys fs.FS, opts ...problemscmd.Option) (*problemscmd.HandlerSet, error) {
	deps := problemscmd.Dependencies{
		Converter: c.converter,
		Service:   c.problemSvc,
		Logging:   c.loggerProvider,
	}
	if fsys != nil {
		deps.Loader = c.ProblemFileLoader(fsys)
	}
	return problemscmd.RegisterProblemCommands(nil, deps, opts...)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.bunDB != nil && c.ownsDB {
		return c.bunDB.Close()
	}
	return nil
}
