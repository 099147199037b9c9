package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"alfredoptarigan/resumai/internal/models"
)

const (
	pageMargin   = 40.0
	bulletIndent = 15.0
)

type textStyle struct {
	size        float64
	leading     float64
	spaceBefore float64
	spaceAfter  float64
}

// pdfTheme is the per-template variation on the shared layout.
type pdfTheme struct {
	family     string
	accent     [3]int
	ruleUnder  bool
	paragraph  textStyle
	heading1   textStyle
	heading2   textStyle
	heading3   textStyle
	bullet     textStyle
	bulletMark string
}

var baseStyles = pdfTheme{
	paragraph: textStyle{size: 9.5, leading: 11, spaceAfter: 2},
	heading1:  textStyle{size: 18, leading: 21.6, spaceAfter: 10},
	heading2:  textStyle{size: 12, leading: 14.4, spaceBefore: 6, spaceAfter: 4},
	heading3:  textStyle{size: 10.5, leading: 12.6, spaceBefore: 4, spaceAfter: 2},
	bullet:    textStyle{size: 9.5, leading: 11, spaceAfter: 1},
}

func themeFor(template models.Template) pdfTheme {
	theme := baseStyles
	theme.family = "Helvetica"
	theme.bulletMark = "•"

	switch template {
	case models.TemplateStructuredProfessional:
		theme.accent = [3]int{30, 41, 59}
		theme.ruleUnder = true
	case models.TemplateChronological:
		theme.family = "Times"
		theme.paragraph.size = 10
		theme.bullet.size = 10
		theme.ruleUnder = true
	}

	return theme
}

// PDFExporter renders a generated document to PDF bytes.
type PDFExporter interface {
	Export(doc *models.Document) ([]byte, error)
}

type pdfExporter struct {
	now func() time.Time
}

func NewPDFExporter() PDFExporter {
	return &pdfExporter{now: time.Now}
}

func (e *pdfExporter) Export(doc *models.Document) ([]byte, error) {
	if doc == nil || len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("%w: document has no content", ErrExportFailed)
	}

	theme := themeFor(doc.Template)

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(e.now())
	pdf.SetModificationDate(e.now())
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("ResumAI", true)
	pdf.AddPage()

	w := &pdfWriter{
		pdf:   pdf,
		theme: theme,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
	}
	for _, block := range doc.Blocks {
		w.writeBlock(block)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: output is not a PDF", ErrExportFailed)
	}

	return out, nil
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	theme pdfTheme
	tr    func(string) string
}

func (w *pdfWriter) writeBlock(block models.Block) {
	switch block.Kind {
	case models.BlockHeading1:
		w.writeHeading(block, w.theme.heading1, false)
	case models.BlockHeading2:
		w.writeHeading(block, w.theme.heading2, w.theme.ruleUnder)
	case models.BlockHeading3:
		w.writeHeading(block, w.theme.heading3, false)
	case models.BlockBullet:
		w.writeBullet(block)
	default:
		w.writeParagraph(block)
	}
}

func (w *pdfWriter) writeHeading(block models.Block, style textStyle, rule bool) {
	pdf := w.pdf
	pdf.Ln(style.spaceBefore)

	r, g, b := w.theme.accent[0], w.theme.accent[1], w.theme.accent[2]
	pdf.SetTextColor(r, g, b)
	pdf.SetFont(w.theme.family, "B", style.size)
	pdf.MultiCell(0, style.leading, w.tr(block.PlainText()), "", "L", false)
	pdf.SetTextColor(0, 0, 0)

	if rule {
		pageWidth, _ := pdf.GetPageSize()
		y := pdf.GetY() + 1
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(0.6)
		pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
		pdf.Ln(2)
	}

	pdf.Ln(style.spaceAfter)
}

func (w *pdfWriter) writeBullet(block models.Block) {
	pdf := w.pdf
	style := w.theme.bullet

	// hanging indent: wrapped lines return to the indented margin
	pdf.SetLeftMargin(pageMargin + bulletIndent)
	pdf.SetX(pageMargin)
	pdf.SetFont(w.theme.family, "", style.size)
	pdf.CellFormat(bulletIndent, style.leading, w.tr(w.theme.bulletMark), "", 0, "L", false, 0, "")
	w.writeSpans(block.Spans, style)
	pdf.SetLeftMargin(pageMargin)

	pdf.Ln(style.leading + style.spaceAfter)
}

func (w *pdfWriter) writeParagraph(block models.Block) {
	style := w.theme.paragraph
	w.pdf.SetX(pageMargin)
	w.writeSpans(block.Spans, style)
	w.pdf.Ln(style.leading + style.spaceAfter)
}

func (w *pdfWriter) writeSpans(spans []models.Span, style textStyle) {
	for _, span := range spans {
		fontStyle := ""
		if span.Bold {
			fontStyle = "B"
		}
		w.pdf.SetFont(w.theme.family, fontStyle, style.size)
		w.pdf.Write(style.leading, w.tr(span.Text))
	}
}
