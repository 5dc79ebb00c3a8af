package di

import (
	"context"
	"testing"

	"github.com/zivuch/website-posts/documents"
	"github.com/zivuch/website-posts/internal/runtimeconfig"
)

func TestNewContainerMemoryDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.DocumentService() == nil {
		t.Fatal("expected document service wired")
	}
	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service wired when feature enabled")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider wired")
	}

	if _, ok := container.DocumentRepository().(*documents.MemoryRepository); !ok {
		t.Fatalf("expected memory repository by default, got %T", container.DocumentRepository())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected validation error for blank content dir")
	}
}

func TestNewContainerMarkdownDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = false
	cfg.Content.Dir = ""

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MarkdownService() != nil {
		t.Fatal("expected no markdown service when feature disabled")
	}
}

func TestNewContainerBunRequiresDB(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir()
	cfg.Storage.Provider = "bun"

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected error when bun storage configured without a db handle")
	}
}

func TestNewContainerRepositoryOverride(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir()

	repo := documents.NewMemoryRepository()
	container, err := NewContainer(cfg, WithDocumentRepository(repo))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	doc, err := container.DocumentService().Register(context.Background(), documents.RegisterDocumentRequest{
		Title:  "Injected",
		Status: "publish",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("expected document stored in injected repository, got %v", err)
	}
	if stored.Slug != "injected" {
		t.Fatalf("unexpected slug %q", stored.Slug)
	}
}
