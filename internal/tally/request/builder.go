// Package request builds the XML envelopes sent to the accounting engine.
//
// All documents are assembled through etree rather than string templates, so
// reserved characters in free-text fields (customer names, addresses,
// narrations) are escaped instead of corrupting the payload.
package request

import (
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/gst"
)

// Request header values selecting server-side behavior.
const (
	requestExport = "Export Data"
	requestImport = "Import Data"
)

// engineDate is the 8-digit positional date form the engine expects.
const engineDate = "20060102"

// DefaultSalesLedger is the revenue ledger credited when no customer-specific
// ledger is configured.
const DefaultSalesLedger = "Sales"

// Builder constructs the four request documents. Builders are pure string
// producers; they never perform I/O.
type Builder struct {
	sellerState string
	ratePercent decimal.Decimal
	salesLedger string

	// inlineTax selects the variant that injects explicit tax ledger
	// entries into the voucher. When false the engine computes tax itself.
	inlineTax bool

	now func() time.Time
}

// Option configures the builder
type Option func(*Builder)

// WithSellerState sets the seller jurisdiction used for the GST split.
func WithSellerState(state string) Option {
	return func(b *Builder) { b.sellerState = state }
}

// WithRatePercent sets the policy tax rate.
func WithRatePercent(rate decimal.Decimal) Option {
	return func(b *Builder) { b.ratePercent = rate }
}

// WithSalesLedger sets the revenue ledger credited on invoices.
func WithSalesLedger(name string) Option {
	return func(b *Builder) { b.salesLedger = name }
}

// WithInlineTax selects whether vouchers carry explicit tax ledger entries
// or defer tax computation to the engine.
func WithInlineTax(inline bool) Option {
	return func(b *Builder) { b.inlineTax = inline }
}

// WithClock overrides the time source used for provisional voucher numbers.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a builder with the default GST policy.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		ratePercent: gst.DefaultRatePercent,
		salesLedger: DefaultSalesLedger,
		inlineTax:   true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// envelope creates the common ENVELOPE/HEADER skeleton and returns the
// document plus its BODY element.
func envelope(requestType string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("ENVELOPE")
	header := env.CreateElement("HEADER")
	header.CreateElement("TALLYREQUEST").SetText(requestType)

	return doc, env.CreateElement("BODY")
}

// staticVariables adds the STATICVARIABLES block shared by export requests.
// company may be empty for company-independent queries.
func staticVariables(parent *etree.Element, company string) {
	vars := parent.CreateElement("STATICVARIABLES")
	vars.CreateElement("SVEXPORTFORMAT").SetText("$$SysName:XML")
	if company != "" {
		vars.CreateElement("SVCURRENTCOMPANY").SetText(company)
	}
}

func render(doc *etree.Document) (string, error) {
	doc.Indent(1)
	return doc.WriteToString()
}
