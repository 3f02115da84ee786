package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-capa"
	"github.com/goliatone/go-capa/internal/di"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

// Options captures configuration shared by the command line tools.
type Options struct {
	// Driver selects the bun driver ("sqlite" or "postgres"). An empty DSN
	// keeps problems in memory.
	Driver           string
	DSN              string
	Cache            bool
	ExplanationLabel string
	ValidateSchema   bool
	LogProvider      string
	LogLevel         string
	LogFormat        string
	LoggerProvider   interfaces.LoggerProvider
}

// BuildModule constructs a module configured from opts.
func BuildModule(opts Options) (*capa.Module, error) {
	cfg := capa.DefaultConfig()
	cfg.Metadata.ValidateSchema = opts.ValidateSchema
	if label := strings.TrimSpace(opts.ExplanationLabel); label != "" {
		cfg.Editor.ExplanationLabel = label
	}

	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Features.Storage = true
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = dsn
		if driver := strings.TrimSpace(opts.Driver); driver != "" {
			cfg.Storage.Driver = driver
		}
		cfg.Cache.Enabled = opts.Cache
	}

	if provider := strings.TrimSpace(opts.LogProvider); provider != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = provider
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Format = format
		}
	}

	var diOpts []di.Option
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := capa.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise capa module: %w", err)
	}
	return module, nil
}

