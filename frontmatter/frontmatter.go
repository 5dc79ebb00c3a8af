package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	fm "github.com/adrg/frontmatter"
)

// Delimiter is the marker line opening and closing a metadata block.
const Delimiter = "---"

// Meta is the decoded metadata block of a single document.
type Meta struct {
	Title         string
	MenuOrder     int
	Status        string
	FeaturedImage string
	Taxonomy      map[string][]string
	Extra         map[string]Value
}

// Raw flattens the metadata into a generic mapping for schema validation and
// storage. Recognized fields use their wire names; extra fields keep their
// original keys.
func (m Meta) Raw() map[string]any {
	raw := make(map[string]any, len(m.Extra)+5)
	for key, value := range m.Extra {
		raw[key] = value.Interface()
	}

	raw["title"] = m.Title
	raw["menu_order"] = m.MenuOrder
	if m.Status != "" {
		raw["post_status"] = m.Status
	}
	if m.FeaturedImage != "" {
		raw["featured_image"] = m.FeaturedImage
	}
	if len(m.Taxonomy) > 0 {
		taxonomy := make(map[string]any, len(m.Taxonomy))
		for axis, labels := range m.Taxonomy {
			items := make([]any, 0, len(labels))
			for _, label := range labels {
				items = append(items, label)
			}
			taxonomy[axis] = items
		}
		raw["taxonomy"] = taxonomy
	}
	return raw
}

// envelope is the typed decode target handed to adrg/frontmatter. Taxonomy is
// decoded loose so shape violations surface as UnsupportedFieldShape instead
// of a YAML type error; every unrecognized key lands in Extra.
type envelope struct {
	Title         string         `yaml:"title"`
	MenuOrder     int            `yaml:"menu_order"`
	Status        string         `yaml:"post_status"`
	FeaturedImage string         `yaml:"featured_image"`
	Taxonomy      map[string]any `yaml:"taxonomy"`
	Extra         map[string]any `yaml:",inline"`
}

// Parse splits the leading metadata block from the body and decodes it.
// The transformation is pure: the same input always yields the same Meta,
// body, and error.
func Parse(source []byte) (Meta, []byte, error) {
	if err := checkDelimiters(source); err != nil {
		return Meta{}, nil, err
	}

	var env envelope
	body, err := fm.MustParse(bytes.NewReader(source), &env)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("%w: decode metadata: %v", ErrMalformedDocument, err)
	}

	meta, err := envelopeToMeta(env)
	if err != nil {
		return Meta{}, nil, err
	}
	return meta, body, nil
}

// checkDelimiters enforces the delimiter contract before any decoding: the
// first line must be the opening marker and a closing marker must follow.
func checkDelimiters(source []byte) error {
	lines := strings.Split(string(source), "\n")
	if len(lines) == 0 {
		return fmt.Errorf("%w: empty input", ErrMalformedDocument)
	}

	first := strings.TrimPrefix(trimLine(lines[0]), "\uFEFF")
	if first != Delimiter {
		return fmt.Errorf("%w: first line %q is not %q", ErrMalformedDocument, truncateLine(lines[0]), Delimiter)
	}

	for _, line := range lines[1:] {
		if trimLine(line) == Delimiter {
			return nil
		}
	}
	return fmt.Errorf("%w: no closing %q before end of input", ErrTruncatedMetadata, Delimiter)
}

func envelopeToMeta(env envelope) (Meta, error) {
	meta := Meta{
		Title:         env.Title,
		MenuOrder:     env.MenuOrder,
		Status:        env.Status,
		FeaturedImage: env.FeaturedImage,
	}

	if len(env.Taxonomy) > 0 {
		meta.Taxonomy = make(map[string][]string, len(env.Taxonomy))
		for axis, raw := range env.Taxonomy {
			labels, err := toStringSlice("taxonomy."+axis, raw)
			if err != nil {
				return Meta{}, err
			}
			meta.Taxonomy[axis] = labels
		}
	}

	if len(env.Extra) > 0 {
		meta.Extra = make(map[string]Value, len(env.Extra))
		for key, raw := range env.Extra {
			value, err := fromAny(key, raw, 0)
			if err != nil {
				return Meta{}, err
			}
			meta.Extra[key] = value
		}
	}

	return meta, nil
}

// toStringSlice accepts a sequence of scalar strings or a single scalar
// string, normalising the latter to a one-element slice.
func toStringSlice(path string, input any) ([]string, error) {
	switch typed := input.(type) {
	case string:
		return []string{typed}, nil
	case []any:
		labels := make([]string, 0, len(typed))
		for i, raw := range typed {
			label, ok := raw.(string)
			if !ok {
				return nil, &UnsupportedFieldShapeError{
					Field: fmt.Sprintf("%s[%d]", path, i),
					Shape: fmt.Sprintf("%T", raw),
				}
			}
			labels = append(labels, label)
		}
		return labels, nil
	default:
		return nil, &UnsupportedFieldShapeError{Field: path, Shape: fmt.Sprintf("%T", input)}
	}
}

func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r")
}

func truncateLine(line string) string {
	line = trimLine(line)
	if len(line) > 40 {
		return line[:40] + "..."
	}
	return line
}
