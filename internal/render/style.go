package render

import (
	"strings"

	cssparser "github.com/aymerick/douceur/parser"
)

// Color is the closed set of text colors the inline CSS subset supports.
type Color int

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
)

// TextStyle describes the formatting of one span. It is a value type:
// every composition returns a new style, so sibling subtrees can never
// leak formatting into each other.
type TextStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     Color
}

func (s TextStyle) withBold() TextStyle      { s.Bold = true; return s }
func (s TextStyle) withItalic() TextStyle    { s.Italic = true; return s }
func (s TextStyle) withUnderline() TextStyle { s.Underline = true; return s }
func (s TextStyle) withStrike() TextStyle    { s.Strike = true; return s }

func (s TextStyle) withColor(c Color) TextStyle { s.Color = c; return s }

// linkStyle is how anchors render: underlined colored text, not an
// interactive hyperlink.
func (s TextStyle) linkStyle() TextStyle {
	return s.withUnderline().withColor(ColorBlue)
}

// boldWeights are the font-weight values treated as bold by the
// restricted CSS subset.
var boldWeights = []string{"bold", "600", "700", "800", "900"}

// composeCSS applies a span's style attribute onto an inherited style.
// Only text-decoration, font-weight, font-style and color are read;
// colors match by substring only - no hex or rgb() support. Unparseable
// declarations leave the inherited style untouched.
func composeCSS(base TextStyle, styleAttr string) TextStyle {
	decls, err := cssparser.ParseDeclarations(styleAttr)
	if err != nil {
		return base
	}

	out := base
	for _, d := range decls {
		value := strings.ToLower(strings.TrimSpace(d.Value))
		switch strings.ToLower(strings.TrimSpace(d.Property)) {
		case "text-decoration":
			if strings.Contains(value, "underline") {
				out = out.withUnderline()
			}
			if strings.Contains(value, "line-through") {
				out = out.withStrike()
			}
		case "font-weight":
			for _, w := range boldWeights {
				if value == w {
					out = out.withBold()
					break
				}
			}
		case "font-style":
			if strings.Contains(value, "italic") {
				out = out.withItalic()
			}
		case "color":
			switch {
			case strings.Contains(value, "red"):
				out = out.withColor(ColorRed)
			case strings.Contains(value, "green"):
				out = out.withColor(ColorGreen)
			case strings.Contains(value, "blue"):
				out = out.withColor(ColorBlue)
			}
		}
	}

	return out
}
