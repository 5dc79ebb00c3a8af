package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDocument reports input that does not begin with a metadata
	// delimiter line, or whose metadata block cannot be decoded.
	ErrMalformedDocument = errors.New("frontmatter: malformed document")
	// ErrTruncatedMetadata reports a metadata block with no closing delimiter
	// before the end of input.
	ErrTruncatedMetadata = errors.New("frontmatter: metadata block is unterminated")
	// ErrUnsupportedFieldShape reports a metadata value nested deeper or shaped
	// differently than the supported variants.
	ErrUnsupportedFieldShape = errors.New("frontmatter: unsupported field shape")
)

// UnsupportedFieldShapeError captures which field carried an unsupported shape.
type UnsupportedFieldShapeError struct {
	Field string
	Shape string
}

func (e *UnsupportedFieldShapeError) Error() string {
	if e == nil {
		return ErrUnsupportedFieldShape.Error()
	}
	field := strings.TrimSpace(e.Field)
	if field == "" {
		return ErrUnsupportedFieldShape.Error()
	}
	if e.Shape == "" {
		return fmt.Sprintf("%s: field=%s", ErrUnsupportedFieldShape.Error(), field)
	}
	return fmt.Sprintf("%s: field=%s shape=%s", ErrUnsupportedFieldShape.Error(), field, e.Shape)
}

func (e *UnsupportedFieldShapeError) Unwrap() error {
	return ErrUnsupportedFieldShape
}
