package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zivuch/website-posts/internal/domain"
)

// Document is the canonical record for one article in the store.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID            uuid.UUID           `bun:",pk,type:uuid"                 json:"id"`
	Slug          string              `bun:"slug,notnull"                  json:"slug"`
	Title         string              `bun:"title,notnull"                 json:"title"`
	MenuOrder     int                 `bun:"menu_order,notnull,default:0"  json:"menu_order"`
	Status        domain.Status       `bun:"status,notnull,default:'draft'" json:"status"`
	FeaturedImage string              `bun:"featured_image"                json:"featured_image,omitempty"`
	Taxonomy      map[string][]string `bun:"taxonomy,type:jsonb"           json:"taxonomy,omitempty"`
	Extra         map[string]any      `bun:"extra,type:jsonb"              json:"extra,omitempty"`
	Body          string              `bun:"body"                          json:"body"`
	Anchors       []Anchor            `bun:"anchors,type:jsonb"            json:"anchors,omitempty"`
	SourcePath    string              `bun:"source_path"                   json:"source_path,omitempty"`
	Checksum      []byte              `bun:"checksum"                      json:"checksum,omitempty"`
	Position      int                 `bun:"position,notnull,default:0"    json:"position"`
	LastModified  time.Time           `bun:"last_modified,nullzero"        json:"last_modified,omitempty"`
	CreatedAt     time.Time           `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time           `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Anchor is a navigation anchor discovered in a document body.
type Anchor struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Published reports whether the document belongs in the published listing.
func (d *Document) Published() bool {
	if d == nil {
		return false
	}
	return d.Status.Published()
}

// Labels returns the labels attached to the given taxonomy axis.
func (d *Document) Labels(axis string) []string {
	if d == nil || len(d.Taxonomy) == 0 {
		return nil
	}
	return append([]string(nil), d.Taxonomy[axis]...)
}
