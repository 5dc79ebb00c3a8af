package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/zivuch/website-posts/documents"
	"github.com/zivuch/website-posts/internal/logging"
	"github.com/zivuch/website-posts/pkg/interfaces"
)

// ErrDocumentServiceRequired is returned when an importer is built without a
// document service.
var ErrDocumentServiceRequired = errors.New("markdown importer: document service is required")

// ImporterConfig encapsulates dependencies required to persist markdown sources.
type ImporterConfig struct {
	Documents documents.Service
	Outline   *OutlineParser
	Logger    interfaces.Logger
}

// Importer turns parsed markdown sources into document records.
type Importer struct {
	documents documents.Service
	outline   *OutlineParser
	logger    interfaces.Logger
}

// ImportOptions controls how sources are applied to the store.
type ImportOptions struct {
	// DryRun evaluates the batch without writing anything.
	DryRun bool
}

// SyncOptions extends ImportOptions with orphan handling.
type SyncOptions struct {
	ImportOptions
	// DeleteOrphaned removes stored documents whose source file is no longer
	// part of the batch.
	DeleteOrphaned bool
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) (*Importer, error) {
	if cfg.Documents == nil {
		return nil, ErrDocumentServiceRequired
	}

	outline := cfg.Outline
	if outline == nil {
		outline = NewOutlineParser()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Importer{
		documents: cfg.Documents,
		outline:   outline,
		logger:    logger,
	}, nil
}

// ImportSource applies a single markdown source to the store.
func (i *Importer) ImportSource(ctx context.Context, source *Source, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	i.applySource(ctx, source, opts, result)
	return result, nil
}

// ImportSources applies a batch of sources. A failing source is recorded in
// the result and never blocks the rest of the batch.
func (i *Importer) ImportSources(ctx context.Context, sources []*Source, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		i.applySource(ctx, source, opts, result)
	}
	return result, nil
}

// Sync imports every source and optionally removes stored documents whose
// source files disappeared.
func (i *Importer) Sync(ctx context.Context, sources []*Source, opts SyncOptions) (*SyncResult, error) {
	imported, err := i.ImportSources(ctx, sources, opts.ImportOptions)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{ImportResult: *imported}
	if !opts.DeleteOrphaned {
		return result, nil
	}

	seen := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		seen[source.Slug()] = struct{}{}
	}

	stored, err := i.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("markdown importer: list documents: %w", err)
	}

	for _, record := range stored {
		if record.SourcePath == "" {
			continue
		}
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			result.Deleted = append(result.Deleted, record.Slug)
			continue
		}
		if err := i.documents.Remove(ctx, record.ID); err != nil {
			result.Errors = append(result.Errors, &SourceError{Path: record.SourcePath, Err: err})
			continue
		}
		i.logger.Info("orphaned document removed", "slug", record.Slug, "source_path", record.SourcePath)
		result.Deleted = append(result.Deleted, record.Slug)
	}
	sort.Strings(result.Deleted)

	return result, nil
}

func (i *Importer) applySource(ctx context.Context, source *Source, opts ImportOptions, result *ImportResult) {
	slug := source.Slug()
	logger := logging.WithSourceContext(i.logger, source.Path, slug, "import")

	existing, err := i.documents.GetBySlug(ctx, slug)
	if err != nil && !documents.IsNotFound(err) {
		result.Errors = append(result.Errors, &SourceError{Path: source.Path, Err: err})
		return
	}

	if existing != nil && bytes.Equal(existing.Checksum, source.Checksum) {
		logger.Debug("source unchanged, skipping")
		result.Skipped = append(result.Skipped, slug)
		return
	}

	if opts.DryRun {
		if existing == nil {
			result.Created = append(result.Created, slug)
		} else {
			result.Updated = append(result.Updated, slug)
		}
		return
	}

	anchors := i.outline.Outline(source.Body)
	extra := extraValues(source)

	if existing == nil {
		created, err := i.documents.Register(ctx, documents.RegisterDocumentRequest{
			Slug:          slug,
			Title:         source.Meta.Title,
			MenuOrder:     source.Meta.MenuOrder,
			Status:        source.Meta.Status,
			FeaturedImage: source.Meta.FeaturedImage,
			Taxonomy:      source.Meta.Taxonomy,
			Extra:         extra,
			Body:          string(source.Body),
			Anchors:       anchors,
			SourcePath:    source.Path,
			Checksum:      source.Checksum,
			LastModified:  source.LastModified,
		})
		if err != nil {
			result.Errors = append(result.Errors, &SourceError{Path: source.Path, Err: err})
			return
		}
		logger.Info("document created", "menu_order", created.MenuOrder)
		result.Created = append(result.Created, created.Slug)
		return
	}

	updated, err := i.documents.Update(ctx, documents.UpdateDocumentRequest{
		ID:            existing.ID,
		Title:         source.Meta.Title,
		MenuOrder:     source.Meta.MenuOrder,
		Status:        source.Meta.Status,
		FeaturedImage: source.Meta.FeaturedImage,
		Taxonomy:      source.Meta.Taxonomy,
		Extra:         extra,
		Body:          string(source.Body),
		Anchors:       anchors,
		SourcePath:    source.Path,
		Checksum:      source.Checksum,
		LastModified:  source.LastModified,
	})
	if err != nil {
		result.Errors = append(result.Errors, &SourceError{Path: source.Path, Err: err})
		return
	}
	logger.Info("document updated", "menu_order", updated.MenuOrder)
	result.Updated = append(result.Updated, updated.Slug)
}

func extraValues(source *Source) map[string]any {
	if len(source.Meta.Extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(source.Meta.Extra))
	for key, value := range source.Meta.Extra {
		if key == "slug" {
			continue
		}
		out[key] = value.Interface()
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
