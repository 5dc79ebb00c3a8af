package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// encodeEnvelope fixes the canonical field order for re-encoded metadata.
type encodeEnvelope struct {
	Title         string              `yaml:"title"`
	MenuOrder     int                 `yaml:"menu_order"`
	Status        string              `yaml:"post_status,omitempty"`
	FeaturedImage string              `yaml:"featured_image,omitempty"`
	Taxonomy      map[string][]string `yaml:"taxonomy,omitempty"`
}

// Encode renders the metadata back into a delimited block. Recognized fields
// come first in canonical order, then extra fields sorted by key. Source key
// order and YAML comments are lossy; re-parsing the output yields a Meta
// equal to the input.
func Encode(meta Meta) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")

	head, err := yaml.Marshal(encodeEnvelope{
		Title:         meta.Title,
		MenuOrder:     meta.MenuOrder,
		Status:        meta.Status,
		FeaturedImage: meta.FeaturedImage,
		Taxonomy:      meta.Taxonomy,
	})
	if err != nil {
		return nil, fmt.Errorf("frontmatter: encode metadata: %w", err)
	}
	buf.Write(head)

	if len(meta.Extra) > 0 {
		extra := make(map[string]any, len(meta.Extra))
		for key, value := range meta.Extra {
			extra[key] = value.Interface()
		}
		tail, err := yaml.Marshal(extra)
		if err != nil {
			return nil, fmt.Errorf("frontmatter: encode extra fields: %w", err)
		}
		buf.Write(tail)
	}

	buf.WriteString(Delimiter + "\n")
	return buf.Bytes(), nil
}

// EncodeDocument joins an encoded metadata block with the document body.
func EncodeDocument(meta Meta, body []byte) ([]byte, error) {
	block, err := Encode(meta)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(block)+len(body)+1)
	out = append(out, block...)
	if len(body) > 0 && body[0] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, body...)
	return out, nil
}
