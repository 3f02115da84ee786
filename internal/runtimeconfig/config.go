package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("capa config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("capa config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("capa config: storage dsn is required for the bun provider")

// ErrStorageFeatureRequired ensures a persistent store is only configured behind the storage flag.
var ErrStorageFeatureRequired = errors.New("capa config: storage feature must be enabled to use the bun provider")

// ErrCacheRequiresStorage ensures the repository cache only wraps a persistent store.
var ErrCacheRequiresStorage = errors.New("capa config: cache requires the bun storage provider")
var ErrCacheTTLInvalid = errors.New("capa config: cache ttl must be positive")
var ErrLoggingProviderRequired = errors.New("capa config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("capa config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("capa config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("capa config: logging format is invalid")

const (
	StorageProviderMemory = "memory"
	StorageProviderBun    = "bun"

	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Config aggregates feature flags and adapter bindings for the module.
type Config struct {
	Editor   EditorConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Metadata MetadataConfig
	Features Features
	Logging  LoggingConfig
}

// EditorConfig captures the strings and behaviour of the problem editor.
type EditorConfig struct {
	// ExplanationLabel is the text written above converted explanations.
	ExplanationLabel string
	// RequireConfirmation asks before the one-way switch to advanced mode.
	RequireConfirmation bool
	Templates           TemplateConfig
}

// TemplateConfig holds the localisable toolbar words.
type TemplateConfig struct {
	Correct          string
	Incorrect        string
	Answer           string
	Header           string
	ShortExplanation string
}

// StorageConfig selects where problems are stored.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MetadataConfig controls problem file front matter handling.
type MetadataConfig struct {
	ValidateSchema bool
}

// Features toggles optional subsystems.
type Features struct {
	Storage bool
	Cache   bool
	Logger  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an in-memory configuration with English editor strings.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			ExplanationLabel:    "Explanation",
			RequireConfirmation: true,
			Templates: TemplateConfig{
				Correct:          "correct",
				Incorrect:        "incorrect",
				Answer:           "answer",
				Header:           "Header",
				ShortExplanation: "Short explanation",
			},
		},
		Storage: StorageConfig{
			Provider: StorageProviderMemory,
			Driver:   StorageDriverSQLite,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Metadata: MetadataConfig{
			ValidateSchema: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalizeProvider(cfg.Storage.Provider)
	switch provider {
	case "", StorageProviderMemory:
	case StorageProviderBun:
		if !cfg.Features.Storage {
			return ErrStorageFeatureRequired
		}
		if !isSupportedDriver(cfg.Storage.Driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Cache.Enabled || cfg.Features.Cache {
		if provider != StorageProviderBun {
			return ErrCacheRequiresStorage
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// StorageProvider returns the normalised storage provider, defaulting to memory.
func (cfg Config) StorageProvider() string {
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" {
		return provider
	}
	return StorageProviderMemory
}

// CacheEnabled reports whether repository reads are cached.
func (cfg Config) CacheEnabled() bool {
	return cfg.Cache.Enabled || cfg.Features.Cache
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedDriver(driver string) bool {
	switch normalizeProvider(driver) {
	case StorageDriverSQLite, StorageDriverPostgres:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
