// Package invoice renders a persisted sale into a printable PDF.
package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

// Shop is the identity block printed at the top of every invoice.
type Shop struct {
	Name    string
	Address string
	Phone   string
}

// Document is everything the renderer needs: the sale with resolved
// customer and item details, plus the shop identity.
type Document struct {
	Shop Shop
	Sale domain.SaleDetail
}

// Render produces the invoice PDF. Output is deterministic for identical
// input: the PDF's creation timestamp is pinned to the sale's own date,
// never the wall clock.
func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	created := saleTime(doc.Sale.Date)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle("Invoice "+doc.Sale.InvoiceNumber, false)
	pdf.AddPage()

	// Shop identity block.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, doc.Shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if doc.Shop.Address != "" {
		pdf.CellFormat(0, 5, doc.Shop.Address, "", 1, "C", false, 0, "")
	}
	if doc.Shop.Phone != "" {
		pdf.CellFormat(0, 5, "Phone: "+doc.Shop.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// Invoice and customer block.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Invoice "+doc.Sale.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Date: "+doc.Sale.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Customer: "+customerLine(doc.Sale), "", 1, "L", false, 0, "")
	if doc.Sale.PaymentMethod != "" {
		pdf.CellFormat(0, 5, "Payment: "+doc.Sale.PaymentMethod, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Item table.
	widths := []float64{62, 30, 38, 25, 35}
	headers := []string{"Item", "Batch", "Qty", "Unit Price", "Total"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	subtotal := 0.0
	for _, item := range doc.Sale.Items {
		subtotal += item.LineTotal
		pdf.CellFormat(widths[0], 7, item.MedicineName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, item.BatchNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, packagingLabel(item), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(item.LineTotal), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Totals.
	pdf.Ln(2)
	totalsLabelWidth := widths[0] + widths[1] + widths[2] + widths[3]
	pdf.CellFormat(totalsLabelWidth, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, money(subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(totalsLabelWidth, 6, "Discount", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, money(doc.Sale.Discount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(totalsLabelWidth, 7, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, money(doc.Sale.TotalAmount), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.Sale.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func customerLine(sale domain.SaleDetail) string {
	if sale.CustomerName == nil {
		return "Walk-in"
	}
	line := *sale.CustomerName
	if sale.CustomerPhone != nil && *sale.CustomerPhone != "" {
		line += " (" + *sale.CustomerPhone + ")"
	}
	return line
}

func packagingLabel(item domain.SaleItem) string {
	if item.Strips > 0 || item.LooseUnits > 0 {
		return fmt.Sprintf("%d strips & %d units", item.Strips, item.LooseUnits)
	}
	return fmt.Sprintf("%d units", item.Quantity)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func saleTime(date string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", date)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
