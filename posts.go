// Package posts is a front-matter driven document store for Markdown
// articles. It parses WordPress-style metadata (title, menu_order,
// post_status, taxonomy) into document records, keeps listings ordered by
// menu_order with stable ties, and imports whole directories in one batch.
package posts

import (
	"github.com/zivuch/website-posts/documents"
	"github.com/zivuch/website-posts/frontmatter"
	markdowncmd "github.com/zivuch/website-posts/internal/commands/markdown"
	"github.com/zivuch/website-posts/internal/di"
	"github.com/zivuch/website-posts/internal/markdown"
	"github.com/zivuch/website-posts/pkg/interfaces"
)

// DocumentService exports the document store contract for consumers of the posts package.
type DocumentService = documents.Service

// Document exports the canonical article record.
type Document = documents.Document

// Anchor exports the navigation anchor record.
type Anchor = documents.Anchor

// ListingOptions exports the listing filter options.
type ListingOptions = documents.ListingOptions

// RegisterDocumentRequest exports the document registration payload.
type RegisterDocumentRequest = documents.RegisterDocumentRequest

// UpdateDocumentRequest exports the document update payload.
type UpdateDocumentRequest = documents.UpdateDocumentRequest

// MarkdownService exports the directory import service.
type MarkdownService = markdown.Service

// ImportOptions exports the markdown import options.
type ImportOptions = markdown.ImportOptions

// SyncOptions exports the markdown sync options.
type SyncOptions = markdown.SyncOptions

// ImportResult exports the batch import outcome.
type ImportResult = markdown.ImportResult

// SyncResult exports the sync outcome.
type SyncResult = markdown.SyncResult

// SourceError exports the per-file failure record collected by batch imports.
type SourceError = markdown.SourceError

// Meta exports the parsed front-matter metadata.
type Meta = frontmatter.Meta

// UnsupportedFieldShapeError exports the parser error identifying a metadata
// field outside the supported value shapes.
type UnsupportedFieldShapeError = frontmatter.UnsupportedFieldShapeError

// Front-matter parser errors.
var (
	ErrMalformedDocument     = frontmatter.ErrMalformedDocument
	ErrTruncatedMetadata     = frontmatter.ErrTruncatedMetadata
	ErrUnsupportedFieldShape = frontmatter.ErrUnsupportedFieldShape
)

// ParseFrontmatter splits a raw article into its metadata and body.
var ParseFrontmatter = frontmatter.Parse

// EncodeFrontmatter serializes metadata back into a delimited header.
var EncodeFrontmatter = frontmatter.Encode

// EncodeDocument serializes metadata and body into a complete article.
var EncodeDocument = frontmatter.EncodeDocument

// ImportDirectoryCommand exports the directory import command message.
type ImportDirectoryCommand = markdowncmd.ImportDirectoryCommand

// SyncDirectoryCommand exports the directory sync command message.
type SyncDirectoryCommand = markdowncmd.SyncDirectoryCommand

// Logger exports the logging contract accepted by the module.
type Logger = interfaces.Logger

// LoggerProvider exports the named-logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// Option exports the DI override type so hosts outside this module can
// customize wiring.
type Option = di.Option

// WithBunDB supplies the database handle backing the bun repository.
var WithBunDB = di.WithBunDB

// WithDocumentRepository replaces the repository used by the document service.
var WithDocumentRepository = di.WithDocumentRepository

// WithLoggerProvider supplies the logger provider used across modules.
var WithLoggerProvider = di.WithLoggerProvider

// WithCache supplies a prebuilt cache service and key serializer.
var WithCache = di.WithCache

// Module is the top level document store runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a posts module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Markdown returns the directory import service, or nil when the markdown
// feature is disabled.
func (m *Module) Markdown() *MarkdownService {
	return m.container.MarkdownService()
}

// ImportDirectoryHandler returns the import command handler, or nil when the
// command layer is disabled.
func (m *Module) ImportDirectoryHandler() *markdowncmd.ImportDirectoryHandler {
	return m.container.ImportDirectoryHandler()
}

// SyncDirectoryHandler returns the sync command handler, or nil when the
// command layer is disabled.
func (m *Module) SyncDirectoryHandler() *markdowncmd.SyncDirectoryHandler {
	return m.container.SyncDirectoryHandler()
}
