package request

import "fmt"

// Ledger fields requested from the engine when looking up a customer.
var ledgerFetchFields = []string{
	"NAME", "ADDRESS", "PINCODE", "LEDGERPHONE", "EMAIL",
	"PARTYGSTIN", "PARENT", "LEDSTATENAME", "LEDGERMOBILE",
}

// Companies builds the static company listing query.
func (b *Builder) Companies() (string, error) {
	doc, body := envelope(requestExport)

	desc := body.CreateElement("EXPORTDATA").CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("List of Companies")
	staticVariables(desc, "")

	return render(doc)
}

// FindCustomer builds a ledger lookup for name within company, requesting
// the fixed field set the wizard needs.
func (b *Builder) FindCustomer(name, company string) (string, error) {
	doc, body := envelope(requestExport)

	desc := body.CreateElement("EXPORTDATA").CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("List of Ledgers")
	staticVariables(desc, company)

	tdl := desc.CreateElement("TDL").CreateElement("TDLMESSAGE")

	coll := tdl.CreateElement("COLLECTION")
	coll.CreateAttr("NAME", "Customer Lookup")
	coll.CreateAttr("ISMODIFY", "No")
	coll.CreateElement("TYPE").SetText("Ledger")
	coll.CreateElement("FILTER").SetText("CustomerNameFilter")
	for _, field := range ledgerFetchFields {
		coll.CreateElement("FETCH").SetText(field)
	}

	filter := tdl.CreateElement("SYSTEM")
	filter.CreateAttr("TYPE", "Formulae")
	filter.CreateAttr("NAME", "CustomerNameFilter")
	filter.SetText(fmt.Sprintf("$Name = %q", name))

	return render(doc)
}

// FetchVoucher builds the follow-up read of a created voucher, used to pick
// up the tax breakdown the engine may have recomputed.
func (b *Builder) FetchVoucher(voucherNumber, company string) (string, error) {
	doc, body := envelope(requestExport)

	desc := body.CreateElement("EXPORTDATA").CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Voucher Register")
	staticVariables(desc, company)

	tdl := desc.CreateElement("TDL").CreateElement("TDLMESSAGE")

	coll := tdl.CreateElement("COLLECTION")
	coll.CreateAttr("NAME", "Voucher Lookup")
	coll.CreateAttr("ISMODIFY", "No")
	coll.CreateElement("TYPE").SetText("Voucher")
	coll.CreateElement("FILTER").SetText("VoucherNumberFilter")
	coll.CreateElement("FETCH").SetText("VOUCHERNUMBER")
	coll.CreateElement("FETCH").SetText("ALLLEDGERENTRIES.LIST")
	coll.CreateElement("FETCH").SetText("ALLINVENTORYENTRIES.LIST")

	filter := tdl.CreateElement("SYSTEM")
	filter.CreateAttr("TYPE", "Formulae")
	filter.CreateAttr("NAME", "VoucherNumberFilter")
	filter.SetText(fmt.Sprintf("$VoucherNumber = %q", voucherNumber))

	return render(doc)
}
