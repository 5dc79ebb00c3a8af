package markdown

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/zivuch/website-posts/frontmatter"
)

func newTestLoader(t *testing.T, recursive bool) *Loader {
	t.Helper()
	return NewLoader(os.DirFS("testdata/articles"), LoaderConfig{Recursive: recursive})
}

func TestLoadFile(t *testing.T) {
	loader := newTestLoader(t, false)

	source, err := loader.LoadFile(context.Background(), "popover.md")
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if source.Meta.Title != "Master the Popover API" {
		t.Fatalf("unexpected title %q", source.Meta.Title)
	}
	if source.Meta.MenuOrder != 2 {
		t.Fatalf("unexpected menu_order %d", source.Meta.MenuOrder)
	}
	if source.Slug() != "popover" {
		t.Fatalf("expected slug derived from file name, got %q", source.Slug())
	}
	if len(source.Checksum) == 0 {
		t.Fatal("expected checksum to be populated")
	}
	if source.LastModified.IsZero() {
		t.Fatal("expected last modified timestamp")
	}
}

func TestLoadDirectory_CollectsFailuresAndContinues(t *testing.T) {
	loader := newTestLoader(t, false)

	sources, failures, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("expected 3 parsed sources, got %d", len(sources))
	}
	for i := 1; i < len(sources); i++ {
		if sources[i-1].Path > sources[i].Path {
			t.Fatalf("expected sources sorted by path, got %q before %q", sources[i-1].Path, sources[i].Path)
		}
	}

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Path != "broken.md" {
		t.Fatalf("expected broken.md to fail, got %q", failures[0].Path)
	}
	if !errors.Is(failures[0], frontmatter.ErrTruncatedMetadata) {
		t.Fatalf("expected truncated metadata error, got %v", failures[0].Err)
	}
}

func TestLoadDirectory_RecursiveDiscoversSubdirectories(t *testing.T) {
	flat, _, err := newTestLoader(t, false).LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}
	for _, source := range flat {
		if source.Path == "notes/scratch.md" {
			t.Fatal("expected non-recursive walk to skip sub-directories")
		}
	}

	deep, _, err := newTestLoader(t, true).LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}
	if len(deep) != len(flat)+1 {
		t.Fatalf("expected recursive walk to find one extra source, got %d vs %d", len(deep), len(flat))
	}
}

func TestLoadDirectory_PatternFilter(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata/articles"), LoaderConfig{Pattern: "popover.md"})

	sources, failures, err := loader.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory returned error: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %d", len(failures))
	}
	if len(sources) != 1 || sources[0].Path != "popover.md" {
		t.Fatalf("expected only popover.md, got %d sources", len(sources))
	}
}

func TestLoadDirectory_CancelledContext(t *testing.T) {
	loader := newTestLoader(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := loader.LoadDirectory(ctx, "."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
