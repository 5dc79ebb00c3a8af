package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T, opts ...ServiceOption) Service {
	t.Helper()

	svc, err := NewService(NewMemoryRepository(), opts...)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func register(t *testing.T, svc Service, req RegisterDocumentRequest) *Document {
	t.Helper()

	doc, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register(%q) returned error: %v", req.Title, err)
	}
	return doc
}

func TestRegister_DerivesSlugAndDeterministicID(t *testing.T) {
	svc := newTestService(t)

	doc := register(t, svc, RegisterDocumentRequest{
		Title:  "Master the Popover API",
		Status: "publish",
	})

	if doc.Slug != "master-the-popover-api" {
		t.Fatalf("expected derived slug, got %q", doc.Slug)
	}
	if doc.ID == uuid.Nil {
		t.Fatal("expected non-nil document id")
	}

	other := newTestService(t)
	again := register(t, other, RegisterDocumentRequest{
		Title:  "Master the Popover API",
		Status: "publish",
	})
	if again.ID != doc.ID {
		t.Fatalf("expected deterministic id for identical slug, got %s and %s", doc.ID, again.ID)
	}
}

func TestRegister_RequiresTitleAndStatus(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Register(context.Background(), RegisterDocumentRequest{Status: "publish"}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterDocumentRequest{Title: "Untitled"}); !errors.Is(err, ErrStatusRequired) {
		t.Fatalf("expected ErrStatusRequired, got %v", err)
	}
}

func TestRegister_RejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{Title: "Promise.try", Slug: "promise-try", Status: "publish"})

	_, err := svc.Register(context.Background(), RegisterDocumentRequest{
		Title:  "Promise.try revisited",
		Slug:   "promise-try",
		Status: "draft",
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestListing_OrdersByMenuOrder(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{Title: "Second", MenuOrder: 2, Status: "publish"})
	register(t, svc, RegisterDocumentRequest{Title: "First", MenuOrder: 1, Status: "publish"})

	listing, err := svc.Listing(context.Background(), ListingOptions{})
	if err != nil {
		t.Fatalf("Listing returned error: %v", err)
	}

	if len(listing) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(listing))
	}
	if listing[0].Title != "First" || listing[1].Title != "Second" {
		t.Fatalf("expected [First Second], got [%s %s]", listing[0].Title, listing[1].Title)
	}
}

func TestListing_StableForEqualMenuOrder(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{Title: "Lead", MenuOrder: 1, Status: "publish"})
	register(t, svc, RegisterDocumentRequest{Title: "Tie A", MenuOrder: 3, Status: "publish"})
	register(t, svc, RegisterDocumentRequest{Title: "Tie B", MenuOrder: 3, Status: "publish"})

	for run := 0; run < 5; run++ {
		listing, err := svc.Listing(context.Background(), ListingOptions{})
		if err != nil {
			t.Fatalf("Listing returned error: %v", err)
		}
		got := []string{listing[0].Title, listing[1].Title, listing[2].Title}
		want := []string{"Lead", "Tie A", "Tie B"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: expected %v, got %v", run, want, got)
			}
		}
	}
}

func TestListing_ExcludesUnpublished(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{Title: "Published", MenuOrder: 1, Status: "publish"})
	register(t, svc, RegisterDocumentRequest{Title: "Draft", MenuOrder: 2, Status: "draft"})
	register(t, svc, RegisterDocumentRequest{Title: "Mystery", MenuOrder: 3, Status: "archived"})

	listing, err := svc.Listing(context.Background(), ListingOptions{})
	if err != nil {
		t.Fatalf("Listing returned error: %v", err)
	}
	if len(listing) != 1 || listing[0].Title != "Published" {
		t.Fatalf("expected only the published document, got %d entries", len(listing))
	}

	all, err := svc.Listing(context.Background(), ListingOptions{IncludeUnpublished: true})
	if err != nil {
		t.Fatalf("Listing returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 documents with drafts included, got %d", len(all))
	}

	stored, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected drafts retained in the store, got %d documents", len(stored))
	}
	if stored[2].Status != "archived" {
		t.Fatalf("expected unknown status stored verbatim, got %q", stored[2].Status)
	}
}

func TestListing_FiltersByTaxonomy(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{
		Title:    "Popover",
		Status:   "publish",
		Taxonomy: map[string][]string{"category": {"JavaScript"}, "post_tag": {"popover", "html"}},
	})
	register(t, svc, RegisterDocumentRequest{
		Title:    "Grid Tricks",
		Status:   "publish",
		Taxonomy: map[string][]string{"category": {"CSS"}},
	})

	listing, err := svc.Listing(context.Background(), ListingOptions{
		Taxonomy: map[string]string{"category": "javascript"},
	})
	if err != nil {
		t.Fatalf("Listing returned error: %v", err)
	}
	if len(listing) != 1 || listing[0].Title != "Popover" {
		t.Fatalf("expected taxonomy filter to match Popover, got %d entries", len(listing))
	}
}

func TestUpdate_PreservesPositionAndSlug(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, RegisterDocumentRequest{Title: "Anchor", MenuOrder: 1, Status: "publish"})
	doc := register(t, svc, RegisterDocumentRequest{Title: "Moving", MenuOrder: 5, Status: "draft"})

	updated, err := svc.Update(context.Background(), UpdateDocumentRequest{
		ID:           doc.ID,
		Title:        "Moving",
		MenuOrder:    5,
		Status:       "publish",
		Body:         "updated body",
		LastModified: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Position != doc.Position {
		t.Fatalf("expected position %d preserved, got %d", doc.Position, updated.Position)
	}
	if updated.Slug != doc.Slug {
		t.Fatalf("expected slug %q preserved, got %q", doc.Slug, updated.Slug)
	}
	if updated.Status != "publish" {
		t.Fatalf("expected status publish after update, got %q", updated.Status)
	}
	if updated.Body != "updated body" {
		t.Fatalf("expected body replaced, got %q", updated.Body)
	}
}

func TestUpdate_RequiresExistingDocument(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), UpdateDocumentRequest{
		ID:     uuid.New(),
		Title:  "Ghost",
		Status: "publish",
	})
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRemove_DeletesDocument(t *testing.T) {
	svc := newTestService(t)

	doc := register(t, svc, RegisterDocumentRequest{Title: "Ephemeral", Status: "publish"})

	if err := svc.Remove(context.Background(), doc.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), doc.ID); !IsNotFound(err) {
		t.Fatalf("expected not-found after removal, got %v", err)
	}
}

func TestRegister_ValidatesMetadataAgainstSchema(t *testing.T) {
	validator, err := NewMetadataValidator(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"author": map[string]any{"type": "string"},
		},
		"required": []any{"author"},
	})
	if err != nil {
		t.Fatalf("NewMetadataValidator returned error: %v", err)
	}

	svc := newTestService(t, WithMetadataValidator(validator))

	register(t, svc, RegisterDocumentRequest{
		Title:  "With Author",
		Status: "publish",
		Extra:  map[string]any{"author": "zivuch"},
	})

	_, err = svc.Register(context.Background(), RegisterDocumentRequest{
		Title:  "Missing Author",
		Status: "publish",
	})
	if !errors.Is(err, ErrMetadataInvalid) {
		t.Fatalf("expected ErrMetadataInvalid, got %v", err)
	}

	var invalid *MetadataInvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected MetadataInvalidError, got %T", err)
	}
	if invalid.Slug != "missing-author" {
		t.Fatalf("expected slug on metadata error, got %q", invalid.Slug)
	}
	if len(invalid.Issues) == 0 {
		t.Fatal("expected at least one schema issue")
	}
}
