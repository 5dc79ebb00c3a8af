package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/zivuch/website-posts/frontmatter"
)

// Source is a parsed markdown file: the front-matter metadata, the body that
// follows it, and enough file identity to detect changes between runs.
type Source struct {
	Path         string
	Meta         frontmatter.Meta
	Body         []byte
	Checksum     []byte
	LastModified time.Time
}

// Slug returns the identifier the document store will use for this source,
// preferring an explicit front-matter slug over the file name.
func (s *Source) Slug() string {
	if s == nil {
		return ""
	}
	if slug, ok := s.Meta.Extra["slug"]; ok {
		raw, _ := slug.AsString()
		if value := strings.TrimSpace(raw); value != "" {
			return value
		}
	}
	base := s.Path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".md")
}

// SourceError records a failure tied to one markdown file. Batch operations
// collect these instead of aborting on the first bad file.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e == nil {
		return "markdown: source error"
	}
	return fmt.Sprintf("markdown: %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ImportResult summarizes the outcome of a batch import. Slugs appear in the
// slice matching what happened to their document; Errors holds the files that
// could not be imported.
type ImportResult struct {
	Created []string
	Updated []string
	Skipped []string
	Errors  []*SourceError
}

// Failed reports whether any source in the batch failed.
func (r *ImportResult) Failed() bool {
	return r != nil && len(r.Errors) > 0
}

// SyncResult extends ImportResult with the documents removed because their
// source files disappeared.
type SyncResult struct {
	ImportResult
	Deleted []string
}
