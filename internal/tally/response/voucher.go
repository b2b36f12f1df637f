package response

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
)

// TaxSummary is the tax breakdown recovered from a created voucher. The
// engine may silently recompute taxes the provisional document did not
// specify, so this read is the authoritative view of the invoice's totals.
type TaxSummary struct {
	VoucherNumber string
	Subtotal      decimal.Decimal
	CGST          *model.TaxComponent
	SGST          *model.TaxComponent
	IGST          *model.TaxComponent
	Total         decimal.Decimal
}

// ledgerEntry is one name/amount pair from a voucher's ledger entries.
type ledgerEntry struct {
	name   string
	rate   string
	amount decimal.Decimal
}

// VoucherTax extracts the tax breakdown of a voucher, best effort.
// partyLedger is the customer's own ledger, whose entry carries the grand
// total. Every step that yields no data degrades to a computed fallback.
func (p *Parser) VoucherTax(raw []byte, partyLedger string) (*TaxSummary, error) {
	doc, err := parse(raw)
	if err != nil {
		p.log.Warn("voucher response is not well-formed XML", zap.Error(err))
		return nil, nil
	}

	summary := &TaxSummary{}
	if el := doc.FindElement("//VOUCHERNUMBER"); el != nil {
		summary.VoucherNumber = strings.TrimSpace(el.Text())
	}

	// Inventory entries sum to the subtotal.
	for _, el := range doc.FindElements("//ALLINVENTORYENTRIES.LIST") {
		summary.Subtotal = summary.Subtotal.Add(amount(childText(el, "AMOUNT")).Abs())
	}

	var entries []ledgerEntry
	for _, path := range []string{"//ALLLEDGERENTRIES.LIST", "//LEDGERENTRIES.LIST"} {
		for _, el := range doc.FindElements(path) {
			entries = append(entries, ledgerEntry{
				name:   childText(el, "LEDGERNAME"),
				rate:   childText(el, "RATEOFTAXCALCULATION"),
				amount: amount(childText(el, "AMOUNT")),
			})
		}
	}

	for _, entry := range entries {
		lower := strings.ToLower(entry.name)
		switch {
		case strings.Contains(lower, "cgst"):
			summary.CGST = addComponent(summary.CGST, entry, summary.Subtotal)
		case strings.Contains(lower, "sgst"):
			summary.SGST = addComponent(summary.SGST, entry, summary.Subtotal)
		case strings.Contains(lower, "igst"):
			summary.IGST = addComponent(summary.IGST, entry, summary.Subtotal)
		case partyLedger != "" && strings.EqualFold(entry.name, partyLedger):
			summary.Total = entry.amount.Abs()
		}
	}

	// Same-state and inter-state components never coexist on one voucher;
	// prefer the split pair when both somehow appear.
	if summary.CGST != nil || summary.SGST != nil {
		summary.IGST = nil
	}

	if summary.Total.IsZero() {
		summary.Total = summary.Subtotal.Add(taxTotal(summary))
	}

	return summary, nil
}

// addComponent accumulates a tax bucket, deriving an effective rate from
// amount/subtotal when the entry carries no explicit rate tag.
func addComponent(existing *model.TaxComponent, entry ledgerEntry, subtotal decimal.Decimal) *model.TaxComponent {
	comp := existing
	if comp == nil {
		comp = &model.TaxComponent{}
	}
	comp.Amount = comp.Amount.Add(entry.amount.Abs())

	if entry.rate != "" {
		comp.Rate = amount(entry.rate)
	} else if !subtotal.IsZero() {
		comp.Rate = comp.Amount.Div(subtotal).Mul(decimal.NewFromInt(100))
	}
	return comp
}

func taxTotal(s *TaxSummary) decimal.Decimal {
	total := decimal.Zero
	for _, comp := range []*model.TaxComponent{s.CGST, s.SGST, s.IGST} {
		if comp != nil {
			total = total.Add(comp.Amount)
		}
	}
	return total
}
