package shopping

import (
	"bytes"
	"fmt"
	"strings"

	"foodgram/domain"

	"github.com/go-pdf/fpdf"
)

const reportHeader = "Shopping list:"

// Layout describes the fixed-page geometry of the PDF report. All values
// are points, measured from the top-left corner of an A4 portrait page.
type Layout struct {
	MarginX        float64
	HeaderY        float64
	StartY         float64
	FloorY         float64
	LineStep       float64
	HeaderFontSize float64
	LineFontSize   float64
	// FontPath points to a TTF with Unicode coverage for the № glyph.
	// When empty a built-in font with codepage translation is used.
	FontPath string
}

func DefaultLayout() Layout {
	return Layout{
		MarginX:        30,
		HeaderY:        72,
		StartY:         112,
		FloorY:         742,
		LineStep:       30,
		HeaderFontSize: 14,
		LineFontSize:   10,
	}
}

// LinesPerPage is how many list lines fit between StartY and FloorY.
func (l Layout) LinesPerPage() int {
	if l.LineStep <= 0 || l.FloorY <= l.StartY {
		return 1
	}
	return int((l.FloorY-l.StartY)/l.LineStep) + 1
}

func lineText(number int, item domain.ShoppingListItem) string {
	return fmt.Sprintf("№%d: %s — %d %s", number, item.Name, item.Total, item.Unit)
}

type reportLine struct {
	Number int
	Text   string
}

// paginate splits the list into pages of at most perPage lines. Numbering
// is global: it starts at 1 and continues across page boundaries.
func paginate(items []domain.ShoppingListItem, perPage int) [][]reportLine {
	if perPage < 1 {
		perPage = 1
	}
	var pages [][]reportLine
	var page []reportLine
	for i, item := range items {
		if len(page) == perPage {
			pages = append(pages, page)
			page = nil
		}
		page = append(page, reportLine{Number: i + 1, Text: lineText(i+1, item)})
	}
	if len(page) > 0 || len(pages) == 0 {
		pages = append(pages, page)
	}
	return pages
}

// RenderText renders the aggregated list as plain text: a header line
// followed by one numbered line per ingredient. No pagination applies.
func RenderText(items []domain.ShoppingListItem) []byte {
	parts := make([]string, 0, len(items)+1)
	parts = append(parts, reportHeader)
	for i, item := range items {
		parts = append(parts, lineText(i+1, item))
	}
	return []byte(strings.Join(parts, "\n"))
}

// RenderPDF renders the aggregated list as a fixed-page A4 document. When
// the next line would cross the layout floor a new page starts and the
// vertical cursor resets; line numbering never resets.
func RenderPDF(items []domain.ShoppingListItem, layout Layout) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(reportHeader, true)

	family := "Helvetica"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if layout.FontPath != "" {
		family = "DejaVuSerif"
		pdf.AddUTF8Font(family, "", layout.FontPath)
		translate = func(s string) string { return s }
	}

	for pageNo, page := range paginate(items, layout.LinesPerPage()) {
		pdf.AddPage()
		if pageNo == 0 {
			pdf.SetFont(family, "", layout.HeaderFontSize)
			pdf.Text(layout.MarginX, layout.HeaderY, translate(reportHeader))
		}
		pdf.SetFont(family, "", layout.LineFontSize)
		for i, line := range page {
			y := layout.StartY + float64(i)*layout.LineStep
			pdf.Text(layout.MarginX, y, translate(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
