package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID derives the identifier for a document record from its slug.
func DocumentUUID(slug string) uuid.UUID {
	return UUID("website-posts:document:" + strings.ToLower(strings.TrimSpace(slug)))
}

// SourceUUID derives the identifier for a markdown source file from its path.
func SourceUUID(path string) uuid.UUID {
	return UUID("website-posts:source:" + strings.TrimSpace(path))
}
