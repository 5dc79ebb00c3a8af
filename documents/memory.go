package documents

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for hosts that treat the
// source files as the only durable state, and for tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Document
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory document repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:   make(map[uuid.UUID]*Document),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied document.
func (m *MemoryRepository) Create(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneDocument(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDocument(copied), nil
}

// Update replaces the stored document with the same ID.
func (m *MemoryRepository) Update(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		delete(m.slugIndex, existing.Slug)
	}

	copied := cloneDocument(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneDocument(copied), nil
}

// GetByID retrieves a document by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(rec), nil
}

// GetBySlug retrieves a document by slug, returning NotFoundError when absent.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: slug}
	}
	return cloneDocument(m.records[id]), nil
}

// List returns every stored document.
func (m *MemoryRepository) List(_ context.Context) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Document, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, cloneDocument(rec))
	}
	return out, nil
}

// Delete removes a document by identifier.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.records, id)
	return nil
}

func cloneDocument(src *Document) *Document {
	if src == nil {
		return nil
	}

	copied := *src
	if len(src.Taxonomy) > 0 {
		copied.Taxonomy = make(map[string][]string, len(src.Taxonomy))
		for axis, labels := range src.Taxonomy {
			copied.Taxonomy[axis] = append([]string(nil), labels...)
		}
	}
	if len(src.Extra) > 0 {
		copied.Extra = make(map[string]any, len(src.Extra))
		for key, value := range src.Extra {
			copied.Extra[key] = value
		}
	}
	if len(src.Anchors) > 0 {
		copied.Anchors = append([]Anchor(nil), src.Anchors...)
	}
	if len(src.Checksum) > 0 {
		copied.Checksum = append([]byte(nil), src.Checksum...)
	}
	return &copied
}
