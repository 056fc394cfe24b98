package main

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ---------------------------------------------------------------------------
// PDF Document
// ---------------------------------------------------------------------------

// A point is 1/72 inch; fpdf takes font sizes in points while the page is
// laid out in millimeters.
const ptToMM = 25.4 / 72

// Document accumulates one landscape 11x17 page per sign. Pages are appended
// in call order and never revisited.
type Document struct {
	pdf     *fpdf.Fpdf
	family  string
	leading float64
	geo     Geometry
	pages   int
}

// NewDocument creates an empty sign document. When fontPath is non-empty the
// TTF at that path is registered as the sign font; otherwise the Helvetica
// core font is used (useful for tests, which then need no font file).
func NewDocument(fontPath string, margin, leading float64) (*Document, error) {
	pdf := fpdf.New("L", "mm", "Tabloid", "")
	pdf.SetMargins(margin, margin, margin)

	// Names close to the page limits must not trigger an automatic page
	// break; placement is controlled entirely by the fitter.
	pdf.SetAutoPageBreak(false, margin)

	family := "Helvetica"
	if fontPath != "" {
		family = "sign"
		pdf.AddUTF8Font(family, "", fontPath)
	}
	pdf.SetFont(family, "", 12)
	pdf.SetTextColor(0, 0, 0)
	if pdf.Err() {
		return nil, fmt.Errorf("failed to load font %s: %w", fontPath, pdf.Error())
	}

	pageW, pageH := pdf.GetPageSize()
	doc := &Document{
		pdf:     pdf,
		family:  family,
		leading: leading,
		geo:     Geometry{PageW: pageW, PageH: pageH, Margin: margin},
	}
	if err := doc.geo.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Geometry returns the page geometry the fitter must stay within.
func (d *Document) Geometry() Geometry { return d.geo }

// Measurer returns a Measurer backed by the document's font metrics.
func (d *Document) Measurer() Measurer { return docMeasurer{d} }

// PageCount reports how many sign pages have been appended.
func (d *Document) PageCount() int { return d.pages }

// AddSign appends one page and draws the fitted layout on it.
func (d *Document) AddSign(layout *Layout) error {
	d.pdf.AddPage()
	d.pdf.SetFont(d.family, "", layout.Size)
	for _, line := range layout.Lines {
		// Text positions at the baseline; the layout carries the top of
		// the line box.
		d.pdf.Text(line.X, line.Y+layout.Size*ptToMM, line.Text)
	}
	if d.pdf.Err() {
		return fmt.Errorf("failed to draw page %d: %w", d.pages+1, d.pdf.Error())
	}
	d.pages++
	return nil
}

// Save writes the finished document to path.
func (d *Document) Save(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Bytes renders the finished document in memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Font metrics
// ---------------------------------------------------------------------------

// docMeasurer measures text with the document's registered font, so the
// fitter sees exactly the widths the renderer will produce.
type docMeasurer struct {
	d *Document
}

func (m docMeasurer) TextWidth(text string, size float64) float64 {
	m.d.pdf.SetFont(m.d.family, "", size)
	return m.d.pdf.GetStringWidth(text)
}

func (m docMeasurer) LineHeight(size float64) float64 {
	return size*ptToMM + m.d.leading
}
