package domain

// Status represents the post_status lifecycle value carried by a document.
type Status string

const (
	// StatusPublish identifies documents eligible for the published listing.
	StatusPublish Status = "publish"
	// StatusDraft indicates a document still under preparation.
	StatusDraft Status = "draft"
	// StatusPending marks a document waiting on editorial review.
	StatusPending Status = "pending"
	// StatusPrivate marks a document visible only to its authors.
	StatusPrivate Status = "private"
)

// Known reports whether the status belongs to the recognized vocabulary.
// Unknown statuses are stored verbatim and treated as unpublished.
func (s Status) Known() bool {
	switch s {
	case StatusPublish, StatusDraft, StatusPending, StatusPrivate:
		return true
	}
	return false
}

// Published reports whether documents carrying this status appear in the
// published listing.
func (s Status) Published() bool {
	return s == StatusPublish
}
