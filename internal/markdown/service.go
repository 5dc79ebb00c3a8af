package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/zivuch/website-posts/documents"
	"github.com/zivuch/website-posts/internal/logging"
	"github.com/zivuch/website-posts/pkg/interfaces"
)

// Config controls how the markdown service discovers and imports files.
type Config struct {
	// BasePath is the root directory where markdown articles live.
	BasePath string
	// Pattern limits discovery to matching files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// FS overrides the filesystem rooted at BasePath, mainly for tests.
	FS fs.FS
}

// Service wires the loader and importer into directory-level operations.
type Service struct {
	loader   *Loader
	importer *Importer
	logger   interfaces.Logger
}

// NewService constructs a markdown service importing into docs.
func NewService(cfg Config, docs documents.Service, logger interfaces.Logger) (*Service, error) {
	filesystem := cfg.FS
	if filesystem == nil {
		prepared, err := prepareFilesystem(cfg.BasePath)
		if err != nil {
			return nil, err
		}
		filesystem = prepared
	}

	if logger == nil {
		logger = logging.NoOp()
	}

	importer, err := NewImporter(ImporterConfig{
		Documents: docs,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &Service{
		loader: NewLoader(filesystem, LoaderConfig{
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		importer: importer,
		logger:   logger,
	}, nil
}

// Load reads and parses a single markdown file relative to the base path.
func (s *Service) Load(ctx context.Context, path string) (*Source, error) {
	return s.loader.LoadFile(ctx, path)
}

// ImportDirectory discovers every markdown file under dir and applies the
// batch to the document store. Parse failures join the import failures in the
// result; the error return is reserved for traversal problems.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	sources, failures, err := s.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result, err := s.importer.ImportSources(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	result.Errors = append(failures, result.Errors...)

	s.logger.Info("directory imported",
		"dir", dir,
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"failed", len(result.Errors),
	)

	return result, nil
}

// SyncDirectory imports dir and removes stored documents whose files are gone
// when opts asks for it.
func (s *Service) SyncDirectory(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error) {
	sources, failures, err := s.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result, err := s.importer.Sync(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	result.Errors = append(failures, result.Errors...)

	s.logger.Info("directory synced",
		"dir", dir,
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"deleted", len(result.Deleted),
		"failed", len(result.Errors),
	)

	return result, nil
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
