package documents

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryRepository_CloneIsolation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	original := &Document{
		ID:       uuid.New(),
		Slug:     "popover",
		Title:    "Popover",
		Taxonomy: map[string][]string{"category": {"JavaScript"}},
		Extra:    map[string]any{"author": "zivuch"},
	}

	if _, err := repo.Create(ctx, original); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	original.Title = "mutated"
	original.Taxonomy["category"][0] = "mutated"

	stored, err := repo.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Title != "Popover" {
		t.Fatalf("expected stored copy isolated from caller mutation, got title %q", stored.Title)
	}
	if stored.Taxonomy["category"][0] != "JavaScript" {
		t.Fatalf("expected taxonomy isolated from caller mutation, got %q", stored.Taxonomy["category"][0])
	}

	stored.Extra["author"] = "someone-else"
	again, err := repo.GetBySlug(ctx, "popover")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if again.Extra["author"] != "zivuch" {
		t.Fatalf("expected read copy isolated, got author %v", again.Extra["author"])
	}
}

func TestMemoryRepository_SlugReindexOnUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	doc := &Document{ID: uuid.New(), Slug: "old-slug", Title: "Doc"}
	if _, err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	doc.Slug = "new-slug"
	if _, err := repo.Update(ctx, doc); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if _, err := repo.GetBySlug(ctx, "old-slug"); !IsNotFound(err) {
		t.Fatalf("expected old slug unindexed, got %v", err)
	}
	if _, err := repo.GetBySlug(ctx, "new-slug"); err != nil {
		t.Fatalf("expected new slug indexed, got %v", err)
	}
}

func TestMemoryRepository_DeleteRemovesSlugIndex(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	doc := &Document{ID: uuid.New(), Slug: "ephemeral", Title: "Doc"}
	if _, err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := repo.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(ctx, doc.ID); !IsNotFound(err) {
		t.Fatalf("expected not found by id, got %v", err)
	}
	if _, err := repo.GetBySlug(ctx, "ephemeral"); !IsNotFound(err) {
		t.Fatalf("expected not found by slug, got %v", err)
	}
	if err := repo.Delete(ctx, doc.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}
