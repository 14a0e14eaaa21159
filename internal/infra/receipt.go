package infra

// receipt.go — sale receipt PDF generation using go-pdf/fpdf.
// Renders a thermal-receipt-style document with the sale lines, the
// paid/credit split and the payment status, returned in-memory so the
// handler can stream it without touching disk.

import (
	"bytes"
	"fmt"

	"github.com/Nes-cmd/merkedube/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderReceiptPDF renders the receipt for a sale and returns the raw bytes.
// The sale must have its Items (and optionally Shop/Customer) preloaded.
func RenderReceiptPDF(businessName string, sale *model.Sale) ([]byte, error) {
	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.SoldAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.Shop != nil {
		pdf.CellFormat(contentW, 4, "Shop: "+sale.Shop.Name, "", 1, "L", false, 0, "")
	}
	if sale.Customer != nil {
		pdf.CellFormat(contentW, 4, "Customer: "+sale.Customer.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range sale.Items {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, line.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Paid:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, sale.Paid.StringFixed(2), "", 1, "R", false, 0, "")
	if !sale.Credit.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Credit:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, sale.Credit.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(col1+col2, 4, "Status:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, string(sale.PaymentStatus), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
