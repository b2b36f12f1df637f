package request_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/tally/request"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Unix(123, 0)
	}
}

func parse(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

func text(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, "missing element %s", path)
	return el.Text()
}

func testCustomer() *model.Customer {
	return &model.Customer{
		Name:      "Acme Traders",
		CompanyID: "Demo Traders",
		GSTIN:     "27AAPFU0939F1ZV",
		Address: model.Address{
			Line1:      "12 MG Road",
			City:       "Pune",
			State:      "Maharashtra",
			PostalCode: "411001",
		},
	}
}

func testInvoice() *model.Invoice {
	return &model.Invoice{
		CustomerName: "Acme Traders",
		CompanyID:    "Demo Traders",
		Date:         time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Items: []model.LineItem{
			{
				Description: "Widget",
				Quantity:    decimal.NewFromInt(2),
				Unit:        "nos",
				Rate:        decimal.NewFromInt(500),
			},
		},
	}
}

func TestCompanies(t *testing.T) {
	b := request.NewBuilder()

	xml, err := b.Companies()
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Export Data", text(t, doc, "//HEADER/TALLYREQUEST"))
	assert.Equal(t, "List of Companies", text(t, doc, "//REQUESTDESC/REPORTNAME"))
	assert.Equal(t, "$$SysName:XML", text(t, doc, "//STATICVARIABLES/SVEXPORTFORMAT"))
	assert.Nil(t, doc.FindElement("//SVCURRENTCOMPANY"), "company listing is company-independent")
}

func TestFindCustomer(t *testing.T) {
	b := request.NewBuilder()

	xml, err := b.FindCustomer("Acme Traders", "Demo Traders")
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Export Data", text(t, doc, "//HEADER/TALLYREQUEST"))
	assert.Equal(t, "List of Ledgers", text(t, doc, "//REQUESTDESC/REPORTNAME"))
	assert.Equal(t, "Demo Traders", text(t, doc, "//SVCURRENTCOMPANY"))

	coll := doc.FindElement("//TDLMESSAGE/COLLECTION")
	require.NotNil(t, coll)
	assert.Equal(t, "Ledger", coll.SelectElement("TYPE").Text())
	assert.Len(t, coll.SelectElements("FETCH"), 9)

	filter := doc.FindElement("//SYSTEM")
	require.NotNil(t, filter)
	assert.Equal(t, "Formulae", filter.SelectAttrValue("TYPE", ""))
	assert.Equal(t, `$Name = "Acme Traders"`, filter.Text())
}

func TestFetchVoucher(t *testing.T) {
	b := request.NewBuilder()

	xml, err := b.FetchVoucher("API-123", "Demo Traders")
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Voucher Register", text(t, doc, "//REQUESTDESC/REPORTNAME"))
	assert.Equal(t, `$VoucherNumber = "API-123"`, text(t, doc, "//SYSTEM"))
}

func TestCreateCustomer(t *testing.T) {
	b := request.NewBuilder()

	xml, err := b.CreateCustomer(testCustomer())
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Import Data", text(t, doc, "//HEADER/TALLYREQUEST"))
	assert.Equal(t, "All Masters", text(t, doc, "//REQUESTDESC/REPORTNAME"))
	assert.Equal(t, "Demo Traders", text(t, doc, "//SVCURRENTCOMPANY"))

	ledger := doc.FindElement("//TALLYMESSAGE/LEDGER")
	require.NotNil(t, ledger)
	assert.Equal(t, "Acme Traders", ledger.SelectAttrValue("NAME", ""))
	assert.Equal(t, "Create", ledger.SelectAttrValue("ACTION", ""))
	assert.Equal(t, "Sundry Debtors", ledger.SelectElement("PARENT").Text())
	assert.Equal(t, "India", ledger.SelectElement("COUNTRYOFRESIDENCE").Text())
	assert.Equal(t, "Regular", ledger.SelectElement("GSTREGISTRATIONTYPE").Text())
	assert.Equal(t, "27AAPFU0939F1ZV", ledger.SelectElement("PARTYGSTIN").Text())
	assert.Equal(t, "Maharashtra", ledger.SelectElement("LEDSTATENAME").Text())
	assert.Equal(t, "411001", ledger.SelectElement("PINCODE").Text())

	lines := doc.FindElements("//ADDRESS.LIST/ADDRESS")
	require.Len(t, lines, 2)
	assert.Equal(t, "12 MG Road", lines[0].Text())
	assert.Equal(t, "Pune", lines[1].Text())
}

func TestCreateCustomer_Unregistered(t *testing.T) {
	b := request.NewBuilder()
	c := testCustomer()
	c.GSTIN = ""

	xml, err := b.CreateCustomer(c)
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Unregistered", text(t, doc, "//GSTREGISTRATIONTYPE"))
	assert.Nil(t, doc.FindElement("//PARTYGSTIN"))
}

func TestCreateCustomer_EscapesReservedCharacters(t *testing.T) {
	b := request.NewBuilder()
	c := testCustomer()
	c.Name = `R&D <Special> "Traders"`
	c.LedgerName = ""

	xml, err := b.CreateCustomer(c)
	require.NoError(t, err)

	// The raw payload must carry entities, not raw markup.
	assert.Contains(t, xml, "R&amp;D &lt;Special&gt;")
	assert.NotContains(t, xml, "<Special>")

	// And a round-trip must recover the original text.
	doc := parse(t, xml)
	assert.Equal(t, `R&D <Special> "Traders"`, text(t, doc, "//LEDGER/NAME"))
}

func TestCreateInvoice_IntraState(t *testing.T) {
	b := request.NewBuilder(
		request.WithSellerState("Maharashtra"),
		request.WithClock(fixedClock()),
	)

	inv := testInvoice()
	xml, err := b.CreateInvoice(inv, testCustomer())
	require.NoError(t, err)

	// The builder mutates the invoice as a side effect.
	assert.Equal(t, "API-123", inv.Number)
	require.NotNil(t, inv.CGST)
	require.NotNil(t, inv.SGST)
	assert.Nil(t, inv.IGST)
	assert.Equal(t, "INR One Thousand One Hundred Eighty Only", inv.AmountInWords)

	doc := parse(t, xml)
	assert.Equal(t, "Import Data", text(t, doc, "//HEADER/TALLYREQUEST"))
	assert.Equal(t, "Vouchers", text(t, doc, "//REQUESTDESC/REPORTNAME"))

	voucher := doc.FindElement("//TALLYMESSAGE/VOUCHER")
	require.NotNil(t, voucher)
	assert.Equal(t, "Sales", voucher.SelectAttrValue("VCHTYPE", ""))
	assert.Equal(t, "20260830", voucher.SelectElement("DATE").Text())
	assert.Equal(t, "API-123", voucher.SelectElement("VOUCHERNUMBER").Text())
	assert.Equal(t, "Acme Traders", voucher.SelectElement("PARTYLEDGERNAME").Text())

	// Party debit carries the negated grand total.
	entries := voucher.SelectElements("LEDGERENTRIES.LIST")
	require.Len(t, entries, 3, "party entry plus CGST and SGST")
	assert.Equal(t, "Acme Traders", entries[0].SelectElement("LEDGERNAME").Text())
	assert.Equal(t, "Yes", entries[0].SelectElement("ISDEEMEDPOSITIVE").Text())
	assert.Equal(t, "-1180.00", entries[0].SelectElement("AMOUNT").Text())

	assert.Equal(t, "CGST", entries[1].SelectElement("LEDGERNAME").Text())
	assert.Equal(t, "90.00", entries[1].SelectElement("AMOUNT").Text())
	assert.Equal(t, "9", entries[1].SelectElement("RATEOFTAXCALCULATION").Text())
	assert.Equal(t, "SGST", entries[2].SelectElement("LEDGERNAME").Text())
	assert.Equal(t, "90.00", entries[2].SelectElement("AMOUNT").Text())

	// Inventory line with its sales allocation.
	item := voucher.SelectElement("ALLINVENTORYENTRIES.LIST")
	require.NotNil(t, item)
	assert.Equal(t, "Widget", item.SelectElement("STOCKITEMNAME").Text())
	assert.Equal(t, "500.00/nos", item.SelectElement("RATE").Text())
	assert.Equal(t, "2 nos", item.SelectElement("BILLEDQTY").Text())
	assert.Equal(t, "1000.00", item.SelectElement("AMOUNT").Text())

	alloc := item.SelectElement("ACCOUNTINGALLOCATIONS.LIST")
	require.NotNil(t, alloc)
	assert.Equal(t, "Sales", alloc.SelectElement("LEDGERNAME").Text())
	assert.Equal(t, "1000.00", alloc.SelectElement("AMOUNT").Text())
}

func TestCreateInvoice_InterState(t *testing.T) {
	b := request.NewBuilder(
		request.WithSellerState("Karnataka"),
		request.WithClock(fixedClock()),
	)

	inv := testInvoice()
	xml, err := b.CreateInvoice(inv, testCustomer())
	require.NoError(t, err)

	require.NotNil(t, inv.IGST)
	assert.Nil(t, inv.CGST)
	assert.Nil(t, inv.SGST)

	doc := parse(t, xml)
	entries := doc.FindElements("//VOUCHER/LEDGERENTRIES.LIST")
	require.Len(t, entries, 2, "party entry plus IGST")
	assert.Equal(t, "IGST", entries[1].SelectElement("LEDGERNAME").Text())
	assert.Equal(t, "180.00", entries[1].SelectElement("AMOUNT").Text())
	assert.Equal(t, "18", entries[1].SelectElement("RATEOFTAXCALCULATION").Text())
}

func TestCreateInvoice_DeferredTax(t *testing.T) {
	b := request.NewBuilder(
		request.WithSellerState("Maharashtra"),
		request.WithInlineTax(false),
		request.WithClock(fixedClock()),
	)

	inv := testInvoice()
	xml, err := b.CreateInvoice(inv, testCustomer())
	require.NoError(t, err)

	// With engine-side tax the voucher carries only the party debit.
	doc := parse(t, xml)
	entries := doc.FindElements("//VOUCHER/LEDGERENTRIES.LIST")
	require.Len(t, entries, 1)
	assert.Equal(t, "-1000.00", entries[0].SelectElement("AMOUNT").Text())
	assert.Nil(t, inv.CGST)
	assert.Nil(t, inv.IGST)
}

func TestCreateInvoice_PreservesExistingNumber(t *testing.T) {
	b := request.NewBuilder(request.WithClock(fixedClock()))

	inv := testInvoice()
	inv.Number = "INV-0042"
	_, err := b.CreateInvoice(inv, testCustomer())
	require.NoError(t, err)

	assert.Equal(t, "INV-0042", inv.Number)
}

func TestCreateInvoice_CustomerSalesLedgerWins(t *testing.T) {
	b := request.NewBuilder(request.WithClock(fixedClock()))

	c := testCustomer()
	c.SalesLedger = "Export Sales"

	xml, err := b.CreateInvoice(testInvoice(), c)
	require.NoError(t, err)

	doc := parse(t, xml)
	assert.Equal(t, "Export Sales", text(t, doc, "//ACCOUNTINGALLOCATIONS.LIST/LEDGERNAME"))
}
