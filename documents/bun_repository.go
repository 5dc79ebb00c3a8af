package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists documents through bun, acting as a durable index
// over the markdown sources.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Document]
}

// NewBunRepository constructs a document repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a document repository backed by bun
// with optional read-through caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(NewDocumentRepository(db), cacheService, keySerializer),
	}
}

// Create inserts the supplied document.
func (r *BunRepository) Create(ctx context.Context, record *Document) (*Document, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "document", record.Slug)
	}
	return created, nil
}

// Update replaces the stored columns of the document with the same ID.
func (r *BunRepository) Update(ctx context.Context, record *Document) (*Document, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"title",
			"menu_order",
			"status",
			"featured_image",
			"taxonomy",
			"extra",
			"body",
			"anchors",
			"source_path",
			"checksum",
			"position",
			"last_modified",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", record.ID.String())
	}
	return updated, nil
}

// GetByID retrieves a document by identifier.
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	return result, nil
}

// GetBySlug retrieves a document by slug.
func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "document", Key: slug}
	}
	return records[0], nil
}

// List returns every stored document in discovery order.
func (r *BunRepository) List(ctx context.Context) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("position ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", "")
	}
	return records, nil
}

// Delete removes a document by identifier.
func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Document{ID: id}); err != nil {
		return mapRepositoryError(err, "document", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
