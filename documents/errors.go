package documents

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTitleRequired      = errors.New("documents: title is required")
	ErrStatusRequired     = errors.New("documents: post status is required")
	ErrSlugRequired       = errors.New("documents: slug is required")
	ErrSlugInvalid        = errors.New("documents: slug contains invalid characters")
	ErrSlugExists         = errors.New("documents: slug already exists")
	ErrDocumentIDRequired = errors.New("documents: document id required")
	ErrMetadataInvalid    = errors.New("documents: metadata failed schema validation")
	ErrRepositoryRequired = errors.New("documents: repository is required")
)

// NotFoundError reports a missing record lookup.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "documents: record not found"
	}
	resource := e.Resource
	if resource == "" {
		resource = "record"
	}
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Sprintf("documents: %s not found", resource)
	}
	return fmt.Sprintf("documents: %s not found: %s", resource, e.Key)
}

// IsNotFound reports whether the error chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// MetadataInvalidError carries the schema issues that rejected a document's
// raw front-matter mapping.
type MetadataInvalidError struct {
	Slug   string
	Issues []string
}

func (e *MetadataInvalidError) Error() string {
	if e == nil {
		return ErrMetadataInvalid.Error()
	}
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: slug=%s", ErrMetadataInvalid.Error(), e.Slug)
	}
	return fmt.Sprintf("%s: slug=%s: %s", ErrMetadataInvalid.Error(), e.Slug, strings.Join(e.Issues, "; "))
}

func (e *MetadataInvalidError) Unwrap() error {
	return ErrMetadataInvalid
}
