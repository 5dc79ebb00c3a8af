package documents

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zivuch/website-posts/internal/domain"
	"github.com/zivuch/website-posts/internal/identity"
	"github.com/zivuch/website-posts/internal/logging"
	"github.com/zivuch/website-posts/pkg/interfaces"
)

// Service exposes the document store use-cases.
type Service interface {
	Register(ctx context.Context, req RegisterDocumentRequest) (*Document, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (*Document, error)
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	GetBySlug(ctx context.Context, slug string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	Listing(ctx context.Context, opts ListingOptions) ([]*Document, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// RegisterDocumentRequest captures the information required to add a document
// to the store. Slug is derived from Title when empty.
type RegisterDocumentRequest struct {
	Slug          string
	Title         string
	MenuOrder     int
	Status        string
	FeaturedImage string
	Taxonomy      map[string][]string
	Extra         map[string]any
	Body          string
	Anchors       []Anchor
	SourcePath    string
	Checksum      []byte
	LastModified  time.Time
}

// UpdateDocumentRequest replaces the mutable fields of an existing document.
type UpdateDocumentRequest struct {
	ID            uuid.UUID
	Title         string
	MenuOrder     int
	Status        string
	FeaturedImage string
	Taxonomy      map[string][]string
	Extra         map[string]any
	Body          string
	Anchors       []Anchor
	SourcePath    string
	Checksum      []byte
	LastModified  time.Time
}

// ListingOptions controls which documents a listing includes. The zero value
// produces the published listing.
type ListingOptions struct {
	// IncludeUnpublished keeps drafts and other non-publish statuses in the
	// result instead of filtering them out.
	IncludeUnpublished bool

	// Taxonomy restricts the listing to documents carrying the label under
	// the given axis, e.g. Taxonomy["category"] = "JavaScript".
	Taxonomy map[string]string
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces a document identifier from its slug.
type IDGenerator func(slug string) uuid.UUID

// WithIDGenerator overrides how document identifiers are derived.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithMetadataValidator enables JSON-schema validation of the raw
// front-matter mapping before a document is accepted.
func WithMetadataValidator(validator *MetadataValidator) ServiceOption {
	return func(s *service) {
		s.validator = validator
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	documents Repository
	now       func() time.Time
	id        IDGenerator
	validator *MetadataValidator
	logger    interfaces.Logger
}

// NewService constructs a document service backed by the given repository.
func NewService(documents Repository, opts ...ServiceOption) (Service, error) {
	if documents == nil {
		return nil, ErrRepositoryRequired
	}

	s := &service{
		documents: documents,
		now:       time.Now,
		id:        identity.DocumentUUID,
		logger:    logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Register validates and stores a new document. The document is appended at
// the end of the current insertion order.
func (s *service) Register(ctx context.Context, req RegisterDocumentRequest) (*Document, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, ErrStatusRequired
	}

	slugValue, err := s.resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	if existing, err := s.documents.GetBySlug(ctx, slugValue); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil && !IsNotFound(err) {
		return nil, err
	}

	if err := s.validateMetadata(slugValue, req.Extra); err != nil {
		return nil, err
	}

	position, err := s.nextPosition(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Document{
		ID:            s.id(slugValue),
		Slug:          slugValue,
		Title:         title,
		MenuOrder:     req.MenuOrder,
		Status:        domain.Status(status),
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Taxonomy:      cloneTaxonomy(req.Taxonomy),
		Extra:         cloneExtra(req.Extra),
		Body:          req.Body,
		Anchors:       append([]Anchor(nil), req.Anchors...),
		SourcePath:    req.SourcePath,
		Checksum:      append([]byte(nil), req.Checksum...),
		Position:      position,
		LastModified:  req.LastModified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.documents.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document registered",
		"slug", created.Slug,
		"menu_order", created.MenuOrder,
		"status", string(created.Status),
	)

	return created, nil
}

// Update replaces the mutable fields of the identified document. The slug,
// identifier, and insertion position are immutable once registered.
func (s *service) Update(ctx context.Context, req UpdateDocumentRequest) (*Document, error) {
	if req.ID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, ErrStatusRequired
	}

	record, err := s.documents.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validateMetadata(record.Slug, req.Extra); err != nil {
		return nil, err
	}

	record.Title = title
	record.MenuOrder = req.MenuOrder
	record.Status = domain.Status(status)
	record.FeaturedImage = strings.TrimSpace(req.FeaturedImage)
	record.Taxonomy = cloneTaxonomy(req.Taxonomy)
	record.Extra = cloneExtra(req.Extra)
	record.Body = req.Body
	record.Anchors = append([]Anchor(nil), req.Anchors...)
	if req.SourcePath != "" {
		record.SourcePath = req.SourcePath
	}
	record.Checksum = append([]byte(nil), req.Checksum...)
	record.LastModified = req.LastModified
	record.UpdatedAt = s.now()

	updated, err := s.documents.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("document updated", "slug", updated.Slug, "status", string(updated.Status))

	return updated, nil
}

// Get fetches a document by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	if id == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	return s.documents.GetByID(ctx, id)
}

// GetBySlug fetches a document by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Document, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	return s.documents.GetBySlug(ctx, slug)
}

// List returns every stored document in insertion order, drafts included.
func (s *service) List(ctx context.Context) ([]*Document, error) {
	records, err := s.documents.List(ctx)
	if err != nil {
		return nil, err
	}
	ordered := append([]*Document(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered, nil
}

// Listing returns documents ordered by menu_order. Documents with equal
// menu_order keep their insertion order. Unless opts says otherwise, only
// published documents are included.
func (s *service) Listing(ctx context.Context, opts ListingOptions) ([]*Document, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*Document, 0, len(records))
	for _, record := range records {
		if !opts.IncludeUnpublished && !record.Published() {
			continue
		}
		if !matchesTaxonomy(record, opts.Taxonomy) {
			continue
		}
		filtered = append(filtered, record)
	}

	// records arrive in insertion order, so a stable sort on menu_order alone
	// preserves the tie-break.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].MenuOrder < filtered[j].MenuOrder
	})

	return filtered, nil
}

// Remove deletes a document from the store.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrDocumentIDRequired
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("document removed", "id", id.String())
	return nil
}

func (s *service) resolveSlug(raw, title string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		value = title
	}
	normalized, err := NormalizeSlug(value)
	if err != nil || normalized == "" {
		return "", ErrSlugInvalid
	}
	if !IsValidSlug(normalized) {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

func (s *service) validateMetadata(slug string, extra map[string]any) error {
	if s.validator == nil {
		return nil
	}
	issues := s.validator.Validate(extra)
	if len(issues) == 0 {
		return nil
	}
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Location != "" {
			messages = append(messages, issue.Location+": "+issue.Message)
			continue
		}
		messages = append(messages, issue.Message)
	}
	return &MetadataInvalidError{Slug: slug, Issues: messages}
}

func (s *service) nextPosition(ctx context.Context) (int, error) {
	records, err := s.documents.List(ctx)
	if err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	next := 0
	for _, record := range records {
		if record.Position >= next {
			next = record.Position + 1
		}
	}
	return next, nil
}

func matchesTaxonomy(record *Document, filters map[string]string) bool {
	if len(filters) == 0 {
		return true
	}
	for axis, label := range filters {
		found := false
		for _, candidate := range record.Labels(axis) {
			if strings.EqualFold(candidate, label) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneTaxonomy(input map[string][]string) map[string][]string {
	if input == nil {
		return nil
	}
	out := make(map[string][]string, len(input))
	for axis, labels := range input {
		out[axis] = append([]string(nil), labels...)
	}
	return out
}

func cloneExtra(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
