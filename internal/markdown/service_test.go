package markdown

import (
	"context"
	"os"
	"testing"

	"github.com/zivuch/website-posts/documents"
)

func newDirectoryService(t *testing.T, recursive bool) (*Service, documents.Service) {
	t.Helper()

	docs, err := documents.NewService(documents.NewMemoryRepository())
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	svc, err := NewService(Config{
		FS:        os.DirFS("testdata/articles"),
		Recursive: recursive,
	}, docs, nil)
	if err != nil {
		t.Fatalf("markdown.NewService returned error: %v", err)
	}
	return svc, docs
}

func TestImportDirectory_EndToEnd(t *testing.T) {
	svc, docs := newDirectoryService(t, false)
	ctx := context.Background()

	result, err := svc.ImportDirectory(ctx, ".", ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory returned error: %v", err)
	}

	if len(result.Created) != 3 {
		t.Fatalf("expected 3 documents created, got %d", len(result.Created))
	}
	if len(result.Errors) != 1 || result.Errors[0].Path != "broken.md" {
		t.Fatalf("expected broken.md collected as failure, got %+v", result.Errors)
	}

	listing, err := docs.Listing(ctx, documents.ListingOptions{})
	if err != nil {
		t.Fatalf("Listing returned error: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("expected draft excluded from published listing, got %d entries", len(listing))
	}
	if listing[0].Slug != "promise-try" || listing[1].Slug != "popover" {
		t.Fatalf("expected menu_order ordering [promise-try popover], got [%s %s]", listing[0].Slug, listing[1].Slug)
	}

	all, err := docs.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected draft retained in store, got %d documents", len(all))
	}
}

func TestImportDirectory_SecondRunSkips(t *testing.T) {
	svc, _ := newDirectoryService(t, false)
	ctx := context.Background()

	if _, err := svc.ImportDirectory(ctx, ".", ImportOptions{}); err != nil {
		t.Fatalf("ImportDirectory returned error: %v", err)
	}

	second, err := svc.ImportDirectory(ctx, ".", ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory returned error: %v", err)
	}
	if len(second.Skipped) != 3 || len(second.Created) != 0 || len(second.Updated) != 0 {
		t.Fatalf("expected unchanged files skipped on second run, got %+v", second)
	}
}

func TestSyncDirectory_RemovesMissingSources(t *testing.T) {
	svc, docs := newDirectoryService(t, false)
	ctx := context.Background()

	if _, err := svc.ImportDirectory(ctx, ".", ImportOptions{}); err != nil {
		t.Fatalf("ImportDirectory returned error: %v", err)
	}

	phantom, err := docs.Register(ctx, documents.RegisterDocumentRequest{
		Slug:       "removed-article",
		Title:      "Removed Article",
		Status:     "publish",
		SourcePath: "removed-article.md",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := svc.SyncDirectory(ctx, ".", SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("SyncDirectory returned error: %v", err)
	}
	if len(result.Deleted) != 1 || result.Deleted[0] != "removed-article" {
		t.Fatalf("expected phantom document deleted, got %+v", result.Deleted)
	}
	if _, err := docs.Get(ctx, phantom.ID); !documents.IsNotFound(err) {
		t.Fatalf("expected phantom gone from store, got %v", err)
	}
}
