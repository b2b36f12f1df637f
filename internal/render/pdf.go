// Package render produces the printable view of a created invoice.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/money"
)

// InvoicePDF renders inv as an A4 tax invoice.
func InvoicePDF(inv *model.Invoice, customer *model.Customer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Invoice No: %s    Date: %s", inv.Number, inv.Date.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Buyer box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Buyer", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("GSTIN: %s", customer.GSTIN), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("State: %s", customer.Address.State), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Company: %s", inv.CompanyID), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Line table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "HSN", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(70, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, money.Format(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, money.Format(item.Amount), "1", 1, "R", false, 0, "")
	}

	// Totals
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(140, 7, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, value, "1", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", money.Format(inv.Subtotal), false)
	if inv.CGST != nil {
		totalRow(fmt.Sprintf("CGST @ %s%%", inv.CGST.Rate.String()), money.Format(inv.CGST.Amount), false)
	}
	if inv.SGST != nil {
		totalRow(fmt.Sprintf("SGST @ %s%%", inv.SGST.Rate.String()), money.Format(inv.SGST.Amount), false)
	}
	if inv.IGST != nil {
		totalRow(fmt.Sprintf("IGST @ %s%%", inv.IGST.Rate.String()), money.Format(inv.IGST.Amount), false)
	}
	totalRow("Total", money.Format(inv.Total), true)

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(190, 7, inv.AmountInWords, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
