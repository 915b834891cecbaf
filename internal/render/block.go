package render

// BlockKind is the closed set of block-level constructs the renderer
// can lay out. Unknown tags never become a kind of their own; the parser
// dissolves them into their children.
type BlockKind int

const (
	// BlockText is a bare text line outside any block element.
	BlockText BlockKind = iota
	// BlockSpacer is the fixed vertical gap produced by <br>.
	BlockSpacer
	BlockParagraph
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockQuote
	BlockList
)

// Block is one laid-out unit of the document body. Spans carry the
// content for everything except lists, which use Items.
type Block struct {
	Kind  BlockKind
	Spans []Span
	Items []ListItem
}

// ListItem is one row of a ul/ol block. Marker is the already-formatted
// prefix: a bullet glyph or "{n}. " for ordered lists.
type ListItem struct {
	Marker string
	Spans  []Span
}

// Span is a run of text with one resolved style.
type Span struct {
	Text  string
	Style TextStyle
}

// Text returns the concatenated plain text of a block's spans.
func (b Block) Text() string {
	var out string
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}
