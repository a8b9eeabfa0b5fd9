package gofpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"sst-facil/orcamento/internal/domain/quote"
	"sst-facil/orcamento/internal/domain/quote/pdf"
)

const (
	coreFamily = "Arial"
	utf8Family = "DejaVu"
	pageMargin = 15
)

// Generator renders quotes with gofpdf. FontDir, when set, must hold
// DejaVuSans.ttf, DejaVuSans-Bold.ttf and DejaVuSans-Oblique.ttf. Otherwise
// the core Arial font is used and text must be encodable in cp1252.
type Generator struct {
	FontDir string
	Log     logrus.FieldLogger
}

func New() *Generator { return &Generator{} }

func NewWithFonts(dir string) *Generator { return &Generator{FontDir: dir} }

func (g *Generator) Generate(q quote.Quote) ([]byte, error) {
	doc := pdf.Layout(q)
	if g.FontDir == "" {
		if err := checkCP1252(doc); err != nil {
			return nil, err
		}
	}

	p := gofpdf.New("P", "mm", "A4", g.FontDir)
	p.SetAutoPageBreak(true, pageMargin)
	p.SetCatalogSort(true)
	p.SetCreationDate(q.IssuedAt)
	p.SetTitle(doc.Title, true)

	family, tr := g.fonts(p)
	if err := p.Error(); err != nil {
		return nil, err
	}
	p.AddPage()

	p.SetFont(family, "B", 14)
	p.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	p.SetFont(family, "", 12)
	p.CellFormat(0, 10, tr(doc.IssueLine), "", 1, "", false, 0, "")
	p.Ln(5)

	p.SetFont(family, "B", 12)
	p.CellFormat(0, 10, tr(doc.ClientHeading), "", 1, "", false, 0, "")
	p.SetFont(family, "", 12)
	for _, f := range doc.ClientFields {
		p.CellFormat(0, 8, tr(f), "", 1, "", false, 0, "")
	}
	p.Ln(5)

	p.SetFont(family, "B", 12)
	p.CellFormat(0, 10, tr(doc.ServicesHeading), "", 1, "", false, 0, "")
	p.SetFont(family, "", 11)
	for _, it := range doc.Items {
		p.MultiCell(0, 8, tr("- "+it.Label+"\n  "+it.Amount), "", "", false)
		p.Ln(1)
	}

	p.SetFont(family, "B", 12)
	p.CellFormat(0, 10, tr(doc.DiscountLine), "", 1, "", false, 0, "")
	p.SetFont(family, "B", 14)
	p.CellFormat(0, 10, tr(doc.TotalLine), "", 1, "", false, 0, "")
	p.Ln(10)

	p.SetFont(family, "", 11)
	p.MultiCell(0, 8, tr(doc.Disclaimer), "", "", false)
	p.Ln(5)
	p.SetFont(family, "I", 11)
	p.MultiCell(0, 8, tr(doc.ValidityLine), "", "", false)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) fonts(p *gofpdf.Fpdf) (string, func(string) string) {
	if g.FontDir == "" {
		return coreFamily, p.UnicodeTranslatorFromDescriptor("")
	}
	g.log().WithField("dir", g.FontDir).Debug("quote pdf: load utf-8 fonts")
	// File names resolve against the font dir passed to gofpdf.New.
	p.AddUTF8Font(utf8Family, "", "DejaVuSans.ttf")
	p.AddUTF8Font(utf8Family, "B", "DejaVuSans-Bold.ttf")
	p.AddUTF8Font(utf8Family, "I", "DejaVuSans-Oblique.ttf")
	return utf8Family, func(s string) string { return s }
}

func (g *Generator) log() logrus.FieldLogger {
	if g.Log != nil {
		return g.Log
	}
	return logrus.StandardLogger()
}

// checkCP1252 rejects text the core fonts would print as '.'.
func checkCP1252(doc pdf.Document) error {
	texts := []string{doc.Title, doc.IssueLine, doc.ClientHeading, doc.ServicesHeading,
		doc.DiscountLine, doc.TotalLine, doc.Disclaimer, doc.ValidityLine}
	texts = append(texts, doc.ClientFields...)
	for _, it := range doc.Items {
		texts = append(texts, it.Label, it.Amount)
	}
	enc := charmap.Windows1252.NewEncoder()
	for _, s := range texts {
		if _, err := enc.String(s); err != nil {
			return fmt.Errorf("%w: %q", pdf.ErrUnsupportedText, s)
		}
	}
	return nil
}
