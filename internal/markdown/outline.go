package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/zivuch/website-posts/documents"
)

// OutlineParser extracts navigation anchors from markdown bodies using the
// goldmark AST. The parser is stateless, so a single instance can be shared.
type OutlineParser struct {
	engine goldmark.Markdown
}

// NewOutlineParser constructs an outline parser with GFM support and
// auto-generated heading identifiers.
func NewOutlineParser() *OutlineParser {
	return &OutlineParser{
		engine: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Outline returns every heading in body as an anchor, in document order.
func (p *OutlineParser) Outline(body []byte) []documents.Anchor {
	if len(body) == 0 {
		return nil
	}

	root := p.engine.Parser().Parse(text.NewReader(body))

	var anchors []documents.Anchor
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		anchor := documents.Anchor{
			Level: heading.Level,
			Text:  strings.TrimSpace(string(heading.Text(body))),
		}
		if value, ok := heading.AttributeString("id"); ok {
			if id, ok := value.([]byte); ok {
				anchor.ID = string(id)
			}
		}

		anchors = append(anchors, anchor)
		return ast.WalkSkipChildren, nil
	})

	return anchors
}
