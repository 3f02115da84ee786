package capa

import "github.com/goliatone/go-capa/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrStorageFeatureRequired  = runtimeconfig.ErrStorageFeatureRequired
	ErrCacheRequiresStorage    = runtimeconfig.ErrCacheRequiresStorage
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	EditorConfig   = runtimeconfig.EditorConfig
	TemplateConfig = runtimeconfig.TemplateConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MetadataConfig = runtimeconfig.MetadataConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns an in-memory configuration with English editor strings.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
