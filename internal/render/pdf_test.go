package render

import (
	"bytes"
	"testing"
)

func TestDefaultTheme(t *testing.T) {
	theme, err := DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	if theme.Page.Size != "A4" {
		t.Errorf("expected A4 page, got %q", theme.Page.Size)
	}
	if theme.Page.BodySize <= 0 || theme.Page.Margin <= 0 {
		t.Errorf("page metrics must be positive: %+v", theme.Page)
	}

	// Every renderable kind must resolve to a section with a usable size.
	kinds := []BlockKind{BlockText, BlockParagraph, BlockHeading1, BlockHeading2, BlockHeading3, BlockQuote, BlockList}
	for _, kind := range kinds {
		bt := theme.blockTheme(kind)
		if bt.Size <= 0 {
			t.Errorf("kind %d: block size must be positive, got %f", kind, bt.Size)
		}
	}
}

func TestLoadTheme_Unknown(t *testing.T) {
	if _, err := LoadTheme("no-such-theme"); err == nil {
		t.Errorf("expected error for unknown theme")
	}
}

func TestThemeBlockTheme_Fallback(t *testing.T) {
	theme, err := DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	// Spacer has no section of its own and falls back to body metrics.
	bt := theme.blockTheme(BlockSpacer)
	if bt.Size != theme.Page.BodySize {
		t.Errorf("expected body size fallback, got %f", bt.Size)
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	theme, err := DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	renderer := NewPDFRenderer(theme, "no-such-logo.png")

	blocks, err := Parse(
		"<h1>Hand Hygiene</h1>" +
			"<p>Wash <b>thoroughly</b> before contact.</p>" +
			"<blockquote>Gloves are not a substitute.</blockquote>" +
			"<ul><li>Soap</li><li>Water</li></ul>" +
			"<br>" +
			"<ol><li>First</li><li>Second</li></ol>",
	)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	desc := "Hand washing and disinfection."
	doc := &Document{
		Title:        "Hand Hygiene",
		CategoryName: "Hygiene",
		Description:  desc,
		Blocks:       blocks,
	}

	out, err := renderer.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output is not a PDF, starts with %q", out[:min(8, len(out))])
	}
	if len(out) < 500 {
		t.Errorf("PDF suspiciously small: %d bytes", len(out))
	}
}

func TestPDFRenderer_RenderEmptyDocument(t *testing.T) {
	theme, err := DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	renderer := NewPDFRenderer(theme, "")

	out, err := renderer.Render(&Document{Title: "Empty"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
}

func TestPDFRenderer_LongContentPaginates(t *testing.T) {
	theme, err := DefaultTheme()
	if err != nil {
		t.Fatalf("DefaultTheme failed: %v", err)
	}
	renderer := NewPDFRenderer(theme, "")

	var blocks []Block
	for i := 0; i < 200; i++ {
		blocks = append(blocks, Block{
			Kind:  BlockParagraph,
			Spans: []Span{{Text: "A line of body text that fills the page."}},
		})
	}

	out, err := renderer.Render(&Document{Title: "Long", Blocks: blocks})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// 200 paragraphs cannot fit one A4 page. The count includes the
	// /Type /Pages tree node, so a single-page document yields 2.
	if n := bytes.Count(out, []byte("/Type /Page")); n < 3 {
		t.Errorf("expected multiple pages, found %d page markers", n)
	}
}

func TestFontStyle(t *testing.T) {
	tests := []struct {
		style    TextStyle
		expected string
	}{
		{TextStyle{}, ""},
		{TextStyle{Bold: true}, "B"},
		{TextStyle{Bold: true, Italic: true}, "BI"},
		{TextStyle{Underline: true, Strike: true}, "US"},
		{TextStyle{Bold: true, Italic: true, Underline: true, Strike: true}, "BIUS"},
	}
	for _, tt := range tests {
		if got := fontStyle(tt.style); got != tt.expected {
			t.Errorf("fontStyle(%+v) = %q, expected %q", tt.style, got, tt.expected)
		}
	}
}
