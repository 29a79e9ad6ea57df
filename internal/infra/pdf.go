package infra

// pdf.go — action-history report rendering using go-pdf/fpdf.
// Produces an A4 landscape table: timestamp, product, category, action,
// discount, reason. Written to storagePath/action_history_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vahid343/food-save-city/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateHistoryReportPDF renders the given ledger entries as a PDF table.
// storagePath is created if needed. Returns the path of the generated file.
func GenerateHistoryReportPDF(entries []dto.HistoryEntryResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("action_history_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Action History Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Generated %s — %d entries",
		time.Now().Format("2006-01-02 15:04"), len(entries)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	colDate := contentW * 0.12
	colName := contentW * 0.22
	colCat := contentW * 0.12
	colAction := contentW * 0.09
	colDisc := contentW * 0.07
	colReason := contentW * 0.38

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(colDate, 6, "Date", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colName, 6, "Product", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colCat, 6, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colAction, 6, "Action", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colDisc, 6, "Disc %", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colReason, 6, "Reason", "1", 1, "L", true, 0, "")
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	_, pageH := pdf.GetPageSize()
	for _, e := range entries {
		if pdf.GetY() > pageH-20 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}

		disc := "-"
		if e.DiscountPercentage != nil {
			disc = fmt.Sprintf("%d%%", *e.DiscountPercentage)
		}
		name := e.ProductName
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		reason := e.Reason
		if len(reason) > 92 {
			reason = reason[:91] + "…"
		}

		pdf.CellFormat(colDate, 5.5, e.CreatedAt, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 5.5, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCat, 5.5, e.ProductCategory, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colAction, 5.5, e.ActionType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colDisc, 5.5, disc, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colReason, 5.5, reason, "1", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
