package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	first := UUID("website-posts:document:popover")
	second := UUID("website-posts:document:popover")

	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected deterministic uuid, got %s and %s", first, second)
	}

	other := UUID("website-posts:document:promise-try")
	if other == first {
		t.Fatal("expected distinct keys to produce distinct uuids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestDocumentUUIDNormalizesSlug(t *testing.T) {
	if DocumentUUID("Popover") != DocumentUUID("  popover  ") {
		t.Fatal("expected case and whitespace insensitive document ids")
	}
	if DocumentUUID("popover") == SourceUUID("popover") {
		t.Fatal("expected document and source namespaces to differ")
	}
}
