package di

import (
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/zivuch/website-posts/documents"
	"github.com/zivuch/website-posts/internal/commands"
	markdowncmd "github.com/zivuch/website-posts/internal/commands/markdown"
	"github.com/zivuch/website-posts/internal/logging"
	"github.com/zivuch/website-posts/internal/logging/gologger"
	"github.com/zivuch/website-posts/internal/markdown"
	"github.com/zivuch/website-posts/internal/runtimeconfig"
	"github.com/zivuch/website-posts/pkg/interfaces"
)

// Container wires module dependencies from configuration plus caller overrides.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	documentRepo documents.Repository
	documentSvc  documents.Service
	markdownSvc  *markdown.Service

	importHandler *markdowncmd.ImportDirectoryHandler
	syncHandler   *markdowncmd.SyncDirectoryHandler
}

// Option overrides a container dependency before wiring runs.
type Option func(*Container)

// WithBunDB supplies the database handle backing the bun repository.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithDocumentRepository replaces the repository used by the document service.
func WithDocumentRepository(repo documents.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.documentRepo = repo
		}
	}
}

// WithDocumentService replaces the fully assembled document service.
func WithDocumentService(svc documents.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.documentSvc = svc
		}
	}
}

// WithLoggerProvider supplies the logger provider used across modules.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithCache supplies a prebuilt cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// NewContainer validates cfg and assembles the module dependency graph.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		documentRepo: documents.NewMemoryRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	c.configureCommands()

	return c, nil
}

// LoggerProvider returns the configured logger provider, never nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DocumentRepository returns the repository backing the document service.
func (c *Container) DocumentRepository() documents.Repository {
	return c.documentRepo
}

// DocumentService returns the assembled document service.
func (c *Container) DocumentService() documents.Service {
	return c.documentSvc
}

// MarkdownService returns the markdown import service, or nil when the
// markdown feature is disabled.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// ImportDirectoryHandler returns the import command handler, or nil when the
// command layer is disabled.
func (c *Container) ImportDirectoryHandler() *markdowncmd.ImportDirectoryHandler {
	return c.importHandler
}

// SyncDirectoryHandler returns the sync command handler, or nil when the
// command layer is disabled.
func (c *Container) SyncDirectoryHandler() *markdowncmd.SyncDirectoryHandler {
	return c.syncHandler
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
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
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  c.Config.Logging.Level,
			Format: "console",
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
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

func (c *Container) configureRepositories() error {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider != "bun" && provider != "sqlite" {
		return nil
	}
	if c.bunDB == nil {
		return fmt.Errorf("posts container: storage provider %q requires a bun.DB (use WithBunDB)", provider)
	}
	c.documentRepo = documents.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) configureServices() error {
	if c.documentSvc == nil {
		svcOpts := []documents.ServiceOption{
			documents.WithLogger(logging.DocumentsLogger(c.loggerProvider)),
		}

		if len(c.Config.Metadata.Schema) > 0 {
			validator, err := documents.NewMetadataValidator(c.Config.Metadata.Schema)
			if err != nil {
				return err
			}
			svcOpts = append(svcOpts, documents.WithMetadataValidator(validator))
		}

		svc, err := documents.NewService(c.documentRepo, svcOpts...)
		if err != nil {
			return err
		}
		c.documentSvc = svc
	}

	if c.Config.Features.Markdown {
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  c.Config.Content.Dir,
			Pattern:   c.Config.Content.Pattern,
			Recursive: c.Config.Content.Recursive,
		}, c.documentSvc, logging.MarkdownLogger(c.loggerProvider))
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}

	return nil
}

func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled || c.markdownSvc == nil {
		return
	}

	gates := markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return c.Config.Features.Markdown },
	}
	logger := logging.CommandsLogger(c.loggerProvider)

	var importOpts []commands.HandlerOption[markdowncmd.ImportDirectoryCommand]
	var syncOpts []commands.HandlerOption[markdowncmd.SyncDirectoryCommand]
	if c.Config.Commands.Timeout > 0 {
		importOpts = append(importOpts, commands.WithTimeout[markdowncmd.ImportDirectoryCommand](c.Config.Commands.Timeout))
		syncOpts = append(syncOpts, commands.WithTimeout[markdowncmd.SyncDirectoryCommand](c.Config.Commands.Timeout))
	}

	c.importHandler = markdowncmd.NewImportDirectoryHandler(c.markdownSvc, logger, gates, importOpts...)
	c.syncHandler = markdowncmd.NewSyncDirectoryHandler(c.markdownSvc, logger, gates, syncOpts...)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
