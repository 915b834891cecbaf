package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse converts a sanitized HTML fragment into the block sequence the
// layout stage consumes. The walk is two-level: a block walk over the
// body's children dispatched through a tag lookup table, and an inline
// walk that accumulates styled spans inside each block. HTML entities
// are decoded by the parser before text reaches either walk.
//
// Parse does not fail on malformed markup - the html package repairs
// what it can - so for sanitizer output it effectively always succeeds.
func Parse(sanitizedHTML string) ([]Block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitizedHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &parser{}
	if body := doc.Find("body").Nodes; len(body) > 0 {
		for c := body[0].FirstChild; c != nil; c = c.NextSibling {
			p.renderNode(c)
		}
	}

	return p.blocks, nil
}

type parser struct {
	blocks []Block
}

// blockRenderer turns one element node into zero or more blocks.
type blockRenderer func(p *parser, n *html.Node)

// blockRenderers keys the block walk by tag name. Tags absent from the
// table are transparent wrappers: the walk recurses into their children
// as if they sat at the current level.
var blockRenderers = map[string]blockRenderer{
	"br":         renderSpacer,
	"p":          blockOf(BlockParagraph),
	"h1":         blockOf(BlockHeading1),
	"h2":         blockOf(BlockHeading2),
	"h3":         blockOf(BlockHeading3),
	"blockquote": renderQuote,
	"ul":         renderUnorderedList,
	"ol":         renderOrderedList,
}

func (p *parser) renderNode(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := n.Data; strings.TrimSpace(text) != "" {
			p.blocks = append(p.blocks, Block{
				Kind:  BlockText,
				Spans: []Span{{Text: strings.TrimSpace(text)}},
			})
		}
	case html.ElementNode:
		if render, ok := blockRenderers[n.Data]; ok {
			render(p, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.renderNode(c)
		}
	}
}

func renderSpacer(p *parser, _ *html.Node) {
	p.blocks = append(p.blocks, Block{Kind: BlockSpacer})
}

// blockOf builds the renderer for paragraph-like tags whose content is a
// single inline run.
func blockOf(kind BlockKind) blockRenderer {
	return func(p *parser, n *html.Node) {
		p.blocks = append(p.blocks, Block{
			Kind:  kind,
			Spans: inlineSpans(n, TextStyle{}),
		})
	}
}

func renderQuote(p *parser, n *html.Node) {
	p.blocks = append(p.blocks, Block{
		Kind:  BlockQuote,
		Spans: inlineSpans(n, TextStyle{}.withItalic()),
	})
}

func renderUnorderedList(p *parser, n *html.Node) {
	items := listItems(n, func(int) string { return "• " })
	if len(items) == 0 {
		return
	}
	p.blocks = append(p.blocks, Block{Kind: BlockList, Items: items})
}

func renderOrderedList(p *parser, n *html.Node) {
	items := listItems(n, func(i int) string { return fmt.Sprintf("%d. ", i) })
	if len(items) == 0 {
		return
	}
	p.blocks = append(p.blocks, Block{Kind: BlockList, Items: items})
}

// listItems collects the direct li children of a list node. The marker
// index is 1-based and runs per list.
func listItems(n *html.Node, marker func(index int) string) []ListItem {
	var items []ListItem
	index := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		index++
		items = append(items, ListItem{
			Marker: marker(index),
			Spans:  inlineSpans(c, TextStyle{}),
		})
	}
	return items
}

// inlineSpans walks the children of a block's content node and
// accumulates styled spans. The style value is threaded through the
// recursion: each formatting tag composes a new style for its subtree
// and siblings keep the inherited one.
func inlineSpans(n *html.Node, style TextStyle) []Span {
	var spans []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		spans = append(spans, inlineNode(c, style)...)
	}
	return spans
}

func inlineNode(n *html.Node, style TextStyle) []Span {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		// Keep the original spacing between spans intact.
		return []Span{{Text: n.Data, Style: style}}

	case html.ElementNode:
		switch n.Data {
		case "b", "strong":
			return inlineSpans(n, style.withBold())
		case "i", "em":
			return inlineSpans(n, style.withItalic())
		case "u":
			return inlineSpans(n, style.withUnderline())
		case "s", "strike", "del":
			return inlineSpans(n, style.withStrike())
		case "span":
			if attr, ok := attrValue(n, "style"); ok {
				return inlineSpans(n, composeCSS(style, attr))
			}
			return inlineSpans(n, style)
		case "a":
			return inlineSpans(n, style.linkStyle())
		case "br":
			return []Span{{Text: "\n", Style: style}}
		default:
			// Unknown inline tags are transparent.
			return inlineSpans(n, style)
		}
	}
	return nil
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
