// Package gst computes the simplified GST breakdown applied to invoices.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/money"
)

// DefaultRatePercent is the policy tax rate.
var DefaultRatePercent = decimal.NewFromInt(18)

// Breakdown is the outcome of a tax calculation. Exactly one of the two
// mutually exclusive forms is populated: the CGST/SGST pair for an
// intra-state sale, or IGST for an inter-state sale.
type Breakdown struct {
	CGST *model.TaxComponent
	SGST *model.TaxComponent
	IGST *model.TaxComponent
}

// Total returns the sum of all component amounts.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	if b.CGST != nil {
		total = total.Add(b.CGST.Amount)
	}
	if b.SGST != nil {
		total = total.Add(b.SGST.Amount)
	}
	if b.IGST != nil {
		total = total.Add(b.IGST.Amount)
	}
	return total
}

// IntraState reports whether buyer and seller share a state. A blank buyer
// state is treated as inter-state, which charges the full rate.
func IntraState(buyerState, sellerState string) bool {
	buyer := strings.TrimSpace(buyerState)
	seller := strings.TrimSpace(sellerState)
	return buyer != "" && strings.EqualFold(buyer, seller)
}

// Calculate splits the tax on subtotal between buyer and seller states.
//
// Same state: two equal components at ratePercent/2 each.
// Different state: one IGST component at the full rate.
//
// No rounding is applied here; a zero subtotal yields zero amounts with
// rates still populated.
func Calculate(subtotal decimal.Decimal, buyerState, sellerState string, ratePercent decimal.Decimal) Breakdown {
	if IntraState(buyerState, sellerState) {
		half := ratePercent.Div(decimal.NewFromInt(2))
		amount := money.Percentage(subtotal, half)
		return Breakdown{
			CGST: &model.TaxComponent{Rate: half, Amount: amount},
			SGST: &model.TaxComponent{Rate: half, Amount: amount},
		}
	}
	return Breakdown{
		IGST: &model.TaxComponent{Rate: ratePercent, Amount: money.Percentage(subtotal, ratePercent)},
	}
}

// Apply sets the breakdown's components on an invoice and refreshes its total.
func (b Breakdown) Apply(inv *model.Invoice) {
	inv.CGST = b.CGST
	inv.SGST = b.SGST
	inv.IGST = b.IGST
	inv.Total = inv.Subtotal.Add(b.Total())
}
