package services

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
)

func tableLabel(o *models.Order) string {
	if o.IsTakeaway() {
		return "Takeaway"
	}
	return o.TableNumber
}

// WriteSalesPDF renders the sales report as a one-table PDF document.
func WriteSalesPDF(w io.Writer, r SalesReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shega Cafe Sales Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Shega Cafe - Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(95, 8, fmt.Sprintf("Orders: %d", r.OrderCount), "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, "Revenue: "+utils.FormatCurrency(r.TotalRevenue), "1", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{20, 60, 25, 45, 40}
	headers := []string{"Order", "Customer", "Table", "Date", "Total"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	for _, o := range r.Orders {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("#%d", o.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(o.CustomerName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(tableLabel(&o)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, o.Timestamp.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, utils.FormatCurrency(o.Total), "1", 1, "R", false, 0, "")
	}
	if len(r.Orders) == 0 {
		pdf.CellFormat(0, 7, "No completed sales.", "1", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render sales pdf: %w", err)
	}
	return nil
}
