package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired     = errors.New("posts config: content directory is required when markdown is enabled")
	ErrStorageProviderUnknown = errors.New("posts config: storage provider is invalid")
	ErrStorageDSNRequired     = errors.New("posts config: storage dsn is required for sqlite provider")
	ErrCacheRequiresStorage   = errors.New("posts config: cache requires the bun storage provider")
	ErrLoggingProviderUnknown = errors.New("posts config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("posts config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("posts config: logging format is invalid")
	ErrCommandTimeoutInvalid  = errors.New("posts config: command timeout must be zero or positive")
)

// Config aggregates feature flags and adapter bindings for the document store.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Content  ContentConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Metadata MetadataConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// ContentConfig captures filesystem discovery behaviour for markdown articles.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// StorageConfig selects the repository backing the document index.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures cache behaviour toggles for the bun repository.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MetadataConfig optionally constrains unrecognized front-matter fields.
type MetadataConfig struct {
	Schema map[string]any
}

// Features toggles module functionality.
type Features struct {
	Markdown bool
	Logger   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded document store.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Markdown: true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

func (cfg Config) Validate() error {
	if cfg.Features.Markdown {
		if strings.TrimSpace(cfg.Content.Dir) == "" {
			return ErrContentDirRequired
		}
	}

	provider := normalizeKey(cfg.Storage.Provider)
	switch provider {
	case "", "memory":
	case "bun", "sqlite":
		if provider == "sqlite" && strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled && (provider == "" || provider == "memory") {
		return ErrCacheRequiresStorage
	}

	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}

	if cfg.Features.Logger {
		logProvider := normalizeKey(cfg.Logging.Provider)
		if !isSupportedLogProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}

	return nil
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLogProvider(provider string) bool {
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
