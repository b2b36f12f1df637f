package request

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/money"
	"github.com/rezonia/tally-bridge/internal/words"
)

// Tax ledger names used when the builder injects explicit tax entries.
const (
	cgstLedger = "CGST"
	sgstLedger = "SGST"
	igstLedger = "IGST"
)

// importBody creates the IMPORTDATA skeleton and returns the TALLYMESSAGE
// element records are appended to.
func importBody(body *etree.Element, reportName, company string) *etree.Element {
	data := body.CreateElement("IMPORTDATA")

	desc := data.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText(reportName)
	if company != "" {
		desc.CreateElement("STATICVARIABLES").
			CreateElement("SVCURRENTCOMPANY").SetText(company)
	}

	msg := data.CreateElement("REQUESTDATA").CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")
	return msg
}

// CreateCustomer builds the ledger-creation record for a customer under the
// fixed "Sundry Debtors" group.
func (b *Builder) CreateCustomer(c *model.Customer) (string, error) {
	doc, body := envelope(requestImport)
	msg := importBody(body, "All Masters", c.CompanyID)

	ledgerName := c.LedgerName
	if ledgerName == "" {
		ledgerName = c.Name
	}

	ledger := msg.CreateElement("LEDGER")
	ledger.CreateAttr("NAME", ledgerName)
	ledger.CreateAttr("ACTION", "Create")

	ledger.CreateElement("NAME").SetText(ledgerName)
	ledger.CreateElement("PARENT").SetText(model.DefaultParentGroup)
	ledger.CreateElement("COUNTRYOFRESIDENCE").SetText(model.DefaultCountry)
	ledger.CreateElement("GSTREGISTRATIONTYPE").SetText(string(c.Registration()))
	if c.GSTIN != "" {
		ledger.CreateElement("PARTYGSTIN").SetText(c.GSTIN)
	}
	if c.Address.State != "" {
		ledger.CreateElement("LEDSTATENAME").SetText(c.Address.State)
	}

	addr := ledger.CreateElement("ADDRESS.LIST")
	addr.CreateAttr("TYPE", "String")
	for _, line := range []string{c.Address.Line1, c.Address.Line2, c.Address.City} {
		if line != "" {
			addr.CreateElement("ADDRESS").SetText(line)
		}
	}
	if c.Address.PostalCode != "" {
		ledger.CreateElement("PINCODE").SetText(c.Address.PostalCode)
	}
	if c.Phone != "" {
		ledger.CreateElement("LEDGERPHONE").SetText(c.Phone)
	}
	if c.Mobile != "" {
		ledger.CreateElement("LEDGERMOBILE").SetText(c.Mobile)
	}
	if c.Email != "" {
		ledger.CreateElement("EMAIL").SetText(c.Email)
	}
	ledger.CreateElement("ISBILLWISEON").SetText("Yes")

	return render(doc)
}

// CreateInvoice builds the Sales voucher for inv.
//
// Before serializing it computes line amounts and the subtotal, applies the
// GST breakdown when the builder is configured for client-side tax, renders
// the amount in words, and assigns a provisional timestamp-based voucher
// number when inv has none. The provisional number is a correlation key
// only; the engine-assigned number supersedes it.
func (b *Builder) CreateInvoice(inv *model.Invoice, customer *model.Customer) (string, error) {
	inv.VoucherType = model.VoucherTypeSales
	inv.CalculateTotals()
	if b.inlineTax {
		gst.Calculate(inv.Subtotal, customer.Address.State, b.sellerState, b.ratePercent).Apply(inv)
	}
	inv.AmountInWords = words.Rupees(inv.Total)
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("API-%d", b.now().Unix())
	}

	doc, body := envelope(requestImport)
	msg := importBody(body, "Vouchers", inv.CompanyID)

	voucher := msg.CreateElement("VOUCHER")
	voucher.CreateAttr("VCHTYPE", string(model.VoucherTypeSales))
	voucher.CreateAttr("ACTION", "Create")

	voucher.CreateElement("DATE").SetText(inv.Date.Format(engineDate))
	voucher.CreateElement("VOUCHERTYPENAME").SetText(string(model.VoucherTypeSales))
	voucher.CreateElement("VOUCHERNUMBER").SetText(inv.Number)
	voucher.CreateElement("PARTYLEDGERNAME").SetText(customerLedgerName(customer))
	if customer.Address.State != "" {
		voucher.CreateElement("STATENAME").SetText(customer.Address.State)
		voucher.CreateElement("PLACEOFSUPPLY").SetText(customer.Address.State)
	}
	voucher.CreateElement("ISINVOICE").SetText("Yes")
	voucher.CreateElement("NARRATION").SetText(inv.AmountInWords)

	// Party ledger is debited for the grand total.
	party := voucher.CreateElement("LEDGERENTRIES.LIST")
	party.CreateElement("LEDGERNAME").SetText(customerLedgerName(customer))
	party.CreateElement("ISDEEMEDPOSITIVE").SetText("Yes")
	party.CreateElement("AMOUNT").SetText(money.Format(inv.Total.Neg()))

	if b.inlineTax {
		b.appendTaxEntries(voucher, inv)
	}

	salesLedger := b.salesLedger
	if customer.SalesLedger != "" {
		salesLedger = customer.SalesLedger
	}
	for _, item := range inv.Items {
		entry := voucher.CreateElement("ALLINVENTORYENTRIES.LIST")
		entry.CreateElement("STOCKITEMNAME").SetText(item.Description)
		if item.HSNCode != "" {
			entry.CreateElement("GSTHSNCODE").SetText(item.HSNCode)
		}
		entry.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
		entry.CreateElement("RATE").SetText(money.Format(item.Rate) + "/" + item.Unit)
		entry.CreateElement("ACTUALQTY").SetText(item.Quantity.String() + " " + item.Unit)
		entry.CreateElement("BILLEDQTY").SetText(item.Quantity.String() + " " + item.Unit)
		entry.CreateElement("AMOUNT").SetText(money.Format(item.Amount))

		alloc := entry.CreateElement("ACCOUNTINGALLOCATIONS.LIST")
		alloc.CreateElement("LEDGERNAME").SetText(salesLedger)
		alloc.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
		alloc.CreateElement("AMOUNT").SetText(money.Format(item.Amount))
	}

	return render(doc)
}

func (b *Builder) appendTaxEntries(voucher *etree.Element, inv *model.Invoice) {
	appendTax := func(name string, comp *model.TaxComponent) {
		if comp == nil {
			return
		}
		entry := voucher.CreateElement("LEDGERENTRIES.LIST")
		entry.CreateElement("LEDGERNAME").SetText(name)
		entry.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
		entry.CreateElement("RATEOFTAXCALCULATION").SetText(comp.Rate.String())
		entry.CreateElement("AMOUNT").SetText(money.Format(comp.Amount))
	}
	appendTax(cgstLedger, inv.CGST)
	appendTax(sgstLedger, inv.SGST)
	appendTax(igstLedger, inv.IGST)
}

func customerLedgerName(c *model.Customer) string {
	if c.LedgerName != "" {
		return c.LedgerName
	}
	return c.Name
}
