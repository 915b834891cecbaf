package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

// Document is the renderer input: header metadata plus the parsed block
// sequence of the body.
type Document struct {
	Title        string
	CategoryName string
	Description  string
	Blocks       []Block
}

// PDFRenderer lays a parsed document out onto fixed-size pages. The
// header (title, category, description, optional logo) and the
// "Page X / Y" footer repeat on every page.
type PDFRenderer struct {
	theme    *Theme
	logoPath string
}

// NewPDFRenderer creates a renderer with the given theme. logoPath may
// point at a missing file; the logo is then omitted without error.
func NewPDFRenderer(theme *Theme, logoPath string) *PDFRenderer {
	return &PDFRenderer{theme: theme, logoPath: logoPath}
}

// Render produces the PDF bytes for a document.
func (r *PDFRenderer) Render(doc *Document) ([]byte, error) {
	t := r.theme
	pdf := fpdf.New("P", "pt", t.Page.Size, "")
	pdf.SetMargins(t.Page.Margin, t.Page.Margin, t.Page.Margin)
	pdf.SetAutoPageBreak(true, t.Page.Margin)
	pdf.AliasNbPages("")

	// Core fonts are cp1252; translate UTF-8 content on the way in.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		r.renderHeader(pdf, tr, doc)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-25)
		pdf.SetFont(t.Page.FontFamily, "", t.Footer.Size)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d / {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	for _, block := range doc.Blocks {
		r.renderBlock(pdf, tr, block)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderHeader(pdf *fpdf.Fpdf, tr func(string) string, doc *Document) {
	t := r.theme

	if info, err := os.Stat(r.logoPath); err == nil && !info.IsDir() {
		pageW, _ := pdf.GetPageSize()
		x := pageW - t.Page.Margin - t.Header.LogoWidth
		pdf.ImageOptions(r.logoPath, x, t.Page.Margin, t.Header.LogoWidth, 0, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(t.Page.FontFamily, "B", t.Header.TitleSize)
	pdf.MultiCell(0, t.Header.TitleSize*1.2, tr(doc.Title), "", "L", false)

	if doc.CategoryName != "" {
		pdf.SetFont(t.Page.FontFamily, "", t.Header.MetaSize)
		pdf.MultiCell(0, t.Header.MetaSize*1.3, tr("Category: "+doc.CategoryName), "", "L", false)
	}
	if doc.Description != "" {
		pdf.SetFont(t.Page.FontFamily, "I", t.Header.MetaSize)
		pdf.MultiCell(0, t.Header.MetaSize*1.3, tr(doc.Description), "", "L", false)
	}

	pdf.Ln(t.Header.PadBottom)
}

func (r *PDFRenderer) renderBlock(pdf *fpdf.Fpdf, tr func(string) string, block Block) {
	t := r.theme

	switch block.Kind {
	case BlockSpacer:
		pdf.Ln(t.SpacerHeight)

	case BlockList:
		bt := t.blockTheme(BlockList)
		lineHt := bt.Size * t.Page.LineHeight
		for _, item := range block.Items {
			pdf.SetFont(t.Page.FontFamily, "", bt.Size)
			pdf.SetTextColor(0, 0, 0)
			pdf.Write(lineHt, tr(item.Marker))
			r.writeSpans(pdf, tr, item.Spans, bt)
			pdf.Ln(lineHt)
		}
		pdf.Ln(bt.PadBottom)

	case BlockQuote:
		bt := t.blockTheme(BlockQuote)
		lineHt := bt.Size * t.Page.LineHeight
		left, _, _, _ := pdf.GetMargins()

		pdf.SetLeftMargin(left + bt.Indent)
		pdf.SetX(left + bt.Indent)
		startY := pdf.GetY()
		startPage := pdf.PageNo()

		r.writeSpans(pdf, tr, block.Spans, bt)
		pdf.Ln(lineHt)
		endY := pdf.GetY()

		pdf.SetLeftMargin(left)
		// The border marks the quote's extent; when a page break splits
		// the quote, only the part on the final page gets the border.
		if pdf.PageNo() == startPage {
			pdf.SetDrawColor(200, 200, 200)
			pdf.SetLineWidth(bt.BorderWidth)
			pdf.Line(left+2, startY, left+2, endY)
		}
		pdf.Ln(bt.PadBottom)

	default:
		bt := t.blockTheme(block.Kind)
		lineHt := bt.Size * t.Page.LineHeight
		r.writeSpans(pdf, tr, block.Spans, bt)
		pdf.Ln(lineHt)
		if bt.PadBottom > 0 {
			pdf.Ln(bt.PadBottom)
		}
	}
}

// writeSpans flows a block's spans as one wrapped run of text, switching
// font style and color at span boundaries. The block theme's weight and
// slant compose with each span's own style.
func (r *PDFRenderer) writeSpans(pdf *fpdf.Fpdf, tr func(string) string, spans []Span, bt BlockTheme) {
	t := r.theme
	lineHt := bt.Size * t.Page.LineHeight

	for _, span := range spans {
		style := span.Style
		if bt.Bold {
			style = style.withBold()
		}
		if bt.Italic {
			style = style.withItalic()
		}

		pdf.SetFont(t.Page.FontFamily, fontStyle(style), bt.Size)
		red, green, blue := colorRGB(style.Color)
		if bt.Italic && style.Color == ColorDefault {
			// Quotes read as quotes: grey unless a span says otherwise.
			red, green, blue = 90, 90, 90
		}
		pdf.SetTextColor(red, green, blue)
		pdf.Write(lineHt, tr(span.Text))
	}
}

// fontStyle maps a TextStyle onto the fpdf style string.
func fontStyle(s TextStyle) string {
	var out string
	if s.Bold {
		out += "B"
	}
	if s.Italic {
		out += "I"
	}
	if s.Underline {
		out += "U"
	}
	if s.Strike {
		out += "S"
	}
	return out
}

func colorRGB(c Color) (int, int, int) {
	switch c {
	case ColorRed:
		return 200, 30, 30
	case ColorGreen:
		return 20, 130, 60
	case ColorBlue:
		return 20, 60, 200
	default:
		return 0, 0, 0
	}
}
