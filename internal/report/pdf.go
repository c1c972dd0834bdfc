// Package report renders niche lists as paginated PDF documents and hands
// them to a Sink (local directory or S3-compatible bucket).
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/logging"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/go-pdf/fpdf"
)

const (
	margin = 20.0
	// Space a niche block is expected to need before it is started on a
	// fresh page.
	blockEstimate   = 80.0
	productsHeading = 30.0
	productEstimate = 20.0
	topKeywords     = 5
)

type rgb struct{ r, g, b int }

var (
	colorTitle   = rgb{40, 40, 40}
	colorMuted   = rgb{100, 100, 100}
	colorHeader  = rgb{0, 102, 204}
	colorBody    = rgb{60, 60, 60}
	colorDetail  = rgb{80, 80, 80}
	colorProduct = rgb{147, 51, 234}
	colorDivider = rgb{220, 220, 220}
)

type Exporter struct {
	log logging.Logger
	now func() time.Time
}

func NewExporter(log logging.Logger) *Exporter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Exporter{log: log, now: time.Now}
}

// Export renders niches and stores the document in sink under FileName(title).
// It returns the location reported by the sink.
func (e *Exporter) Export(ctx context.Context, sink Sink, title string, niches []models.Niche) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, title, niches, e.now()); err != nil {
		return "", err
	}

	name := FileName(title)
	location, err := sink.Put(ctx, name, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to store report %s: %w", name, err)
	}

	e.log.Info(ctx, "report exported", "title", title, "niches", len(niches), "location", location)
	return location, nil
}

// Render writes an A4 portrait PDF for niches to w.
func (e *Exporter) Render(w io.Writer, title string, niches []models.Niche, generatedAt time.Time) error {
	pdf := build(title, niches, generatedAt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

type page struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func build(title string, niches []models.Niche, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(title, true)
	pdf.SetCreator(common.AppName, false)
	pdf.AddPage()

	pw, _ := pdf.GetPageSize()
	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), width: pw - 2*margin}

	p.text("B", 18, colorTitle, 0, 8, fmt.Sprintf("%s Report: %s", common.AppName, title))
	pdf.Ln(10)
	p.text("", 10, colorMuted, 0, 5, "Generated on: "+generatedAt.Format("02/01/2006"))
	pdf.Ln(10)

	for i, n := range niches {
		p.niche(i, n)
	}
	return pdf
}

func (p *page) niche(i int, n models.Niche) {
	pdf := p.pdf
	p.ensure(blockEstimate)

	p.text("B", 14, colorHeader, 0, 7, fmt.Sprintf("%d. %s", i+1, n.Name))
	pdf.Ln(4)
	p.text("", 11, colorBody, 0, 5.5, n.Description)
	pdf.Ln(6)

	p.text("B", 10, rgb{}, 0, 5, fmt.Sprintf("Demand: %d%%  |  Supply: %d%%  |  Opportunity: %d%%",
		n.DemandScore, n.SupplyScore, n.OpportunityScore))
	pdf.Ln(3)

	p.text("", 9, colorDetail, 5, 4.5, "• Supply quality: "+orNA(n.SupplyInsights.QualityAssessment))
	pdf.Ln(2)
	p.text("", 9, colorDetail, 5, 4.5, "• Competition: "+orNA(n.SupplyInsights.CompetitorCount))
	pdf.Ln(2)
	p.text("", 9, colorDetail, 5, 4.5, "• Entry difficulty: "+orNA(n.SupplyInsights.EntryDifficulty))
	pdf.Ln(6)

	terms := make([]string, 0, topKeywords)
	for j, k := range n.Keywords {
		if j == topKeywords {
			break
		}
		terms = append(terms, k.Term)
	}
	p.text("I", 9, colorMuted, 0, 4.5, "Top keywords: "+strings.Join(terms, ", "))
	pdf.Ln(8)

	if len(n.Products) > 0 {
		p.ensure(productsHeading)
		p.text("B", 10, colorProduct, 0, 5, "Missing products (opportunities):")
		pdf.Ln(1)
		for _, prod := range n.Products {
			p.ensure(productEstimate)
			p.text("B", 9, colorBody, 5, 4.5, fmt.Sprintf("• [%s] %s", prod.Type, prod.Title))
			pdf.Ln(2)
			p.text("", 9, colorMuted, 10, 4.5, prod.Description)
			pdf.Ln(4)
		}
		pdf.Ln(4)
	}

	y := pdf.GetY()
	pdf.SetDrawColor(colorDivider.r, colorDivider.g, colorDivider.b)
	pdf.Line(margin, y-2, margin+p.width, y-2)
	pdf.Ln(8)
}

// text writes wrapped text indented from the left margin.
func (p *page) text(style string, size float64, c rgb, indent, lineHeight float64, s string) {
	p.pdf.SetFont("Helvetica", style, size)
	p.pdf.SetTextColor(c.r, c.g, c.b)
	p.pdf.SetX(margin + indent)
	p.pdf.MultiCell(p.width-indent, lineHeight, p.tr(s), "", "L", false)
}

// ensure starts a new page when less than needed millimetres remain.
func (p *page) ensure(needed float64) {
	_, ph := p.pdf.GetPageSize()
	if p.pdf.GetY()+needed > ph-margin {
		p.pdf.AddPage()
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// FileName is the document name for title: every character outside
// [A-Za-z0-9] becomes '_'.
func FileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return common.AppName + "_Report_" + b.String() + ".pdf"
}
