package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/behummble/link-alive/internal/models"
)

const (
	urlWidth    = 110.0
	statusWidth = 20.0
	aliveWidth  = 20.0
	sizeWidth   = 40.0
	rowHeight   = 7.0
	maxURLChars = 70
)

type PDFReport struct {
	now      func() time.Time
	compress bool
}

func NewPDFReport() *PDFReport {
	return &PDFReport{now: time.Now, compress: true}
}

// Render lays the batch out as a single table, one row per link in request
// order.
func (r *PDFReport) Render(batchID string, results []models.LinkResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	// Core fonts are cp1252; anything outside it becomes a placeholder.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Link report "+batchID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Link report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Batch "+batchID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated "+r.now().UTC().Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(urlWidth, rowHeight, "URL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(statusWidth, rowHeight, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(aliveWidth, rowHeight, "Alive", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sizeWidth, rowHeight, "Size", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, result := range results {
		pdf.CellFormat(urlWidth, rowHeight, tr(shorten(result.URL)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(statusWidth, rowHeight, strconv.Itoa(result.StatusCode), "1", 0, "C", false, 0, "")
		pdf.CellFormat(aliveWidth, rowHeight, aliveText(result), "1", 0, "C", false, 0, "")
		pdf.CellFormat(sizeWidth, rowHeight, sizeText(result.SizeInBytes), "1", 1, "R", false, 0, "")
		if result.Failed() && result.Body != "" {
			pdf.SetTextColor(150, 0, 0)
			pdf.MultiCell(0, 5, tr(result.Body), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shorten(url string) string {
	runes := []rune(url)
	if len(runes) <= maxURLChars {
		return url
	}
	return string(runes[:maxURLChars-3]) + "..."
}

func aliveText(result models.LinkResult) string {
	switch {
	case result.Failed():
		return "?"
	case result.IsAlive:
		return "yes"
	default:
		return "no"
	}
}

func sizeText(size models.Size) string {
	if !size.Known() {
		return "-"
	}
	return fmt.Sprintf("%.0f B", float64(size))
}
