package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType identifies the transaction record type in the accounting engine.
type VoucherType string

const (
	VoucherTypeSales VoucherType = "Sales"
)

// RegistrationType is the GST registration classification of a ledger.
type RegistrationType string

const (
	RegistrationRegular      RegistrationType = "Regular"
	RegistrationUnregistered RegistrationType = "Unregistered"
)

// DefaultParentGroup is the ledger group customers are created under.
const DefaultParentGroup = "Sundry Debtors"

// DefaultCountry is the country assigned to newly created ledgers.
const DefaultCountry = "India"

// Company represents a company discovered from the accounting engine.
// Companies are listed once per session and never mutated.
type Company struct {
	// ID is the engine identifier, usually the display name itself.
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Address is a postal address split into positional lines.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Customer represents a buyer ledger in the accounting engine.
type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone,omitempty"`
	Mobile  string  `json:"mobile,omitempty"`
	Email   string  `json:"email,omitempty"`
	Address Address `json:"address"`

	// GSTIN is the tax registration number; empty means unregistered.
	GSTIN string `json:"gstin,omitempty"`

	// LedgerName is the engine-side identity, usually equal to Name.
	LedgerName string `json:"ledger_name"`

	// ParentGroup is the fixed classification group ("Sundry Debtors").
	ParentGroup string `json:"parent_group"`

	// SalesLedger is the revenue ledger credited when invoicing this customer.
	SalesLedger string `json:"sales_ledger,omitempty"`

	// CompanyID is the owning company.
	CompanyID string `json:"company_id"`
}

// Registration derives the GST registration type from GSTIN presence.
func (c *Customer) Registration() RegistrationType {
	if c.GSTIN == "" {
		return RegistrationUnregistered
	}
	return RegistrationRegular
}

// LineItem represents one invoice line.
type LineItem struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`

	// Amount = Quantity * Rate, populated by Calculate.
	Amount decimal.Decimal `json:"amount"`
}

// Calculate computes the line amount from quantity and rate.
func (li *LineItem) Calculate() {
	li.Amount = li.Quantity.Mul(li.Rate)
}

// TaxComponent is one rate/amount pair of a GST breakdown.
type TaxComponent struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Invoice represents a Sales voucher.
//
// Either the CGST/SGST pair or IGST is populated, never both: the pair
// applies when buyer and seller share a state, IGST otherwise.
type Invoice struct {
	ID string `json:"id"`

	// Number is the engine-assigned voucher number. Until the engine
	// confirms one, it holds the provisional client-generated value,
	// which is a correlation key only.
	Number string `json:"number"`

	Date    time.Time  `json:"date"`
	DueDate *time.Time `json:"due_date,omitempty"`

	CustomerName string `json:"customer_name"`
	CompanyID    string `json:"company_id"`

	Items []LineItem `json:"items"`

	Subtotal decimal.Decimal `json:"subtotal"`

	CGST *TaxComponent `json:"cgst,omitempty"`
	SGST *TaxComponent `json:"sgst,omitempty"`
	IGST *TaxComponent `json:"igst,omitempty"`

	Total decimal.Decimal `json:"total"`

	// AmountInWords is the rupee rendering printed on the voucher.
	AmountInWords string `json:"amount_in_words,omitempty"`

	VoucherType VoucherType `json:"voucher_type"`
}

// CalculateTotals recomputes line amounts, the subtotal and the grand total
// from whichever tax components are populated.
func (inv *Invoice) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Calculate()
		subtotal = subtotal.Add(inv.Items[i].Amount)
	}
	inv.Subtotal = subtotal

	total := subtotal
	if inv.CGST != nil {
		total = total.Add(inv.CGST.Amount)
	}
	if inv.SGST != nil {
		total = total.Add(inv.SGST.Amount)
	}
	if inv.IGST != nil {
		total = total.Add(inv.IGST.Amount)
	}
	inv.Total = total
}

// TaxAmount returns the sum of all populated tax components.
func (inv *Invoice) TaxAmount() decimal.Decimal {
	tax := decimal.Zero
	if inv.CGST != nil {
		tax = tax.Add(inv.CGST.Amount)
	}
	if inv.SGST != nil {
		tax = tax.Add(inv.SGST.Amount)
	}
	if inv.IGST != nil {
		tax = tax.Add(inv.IGST.Amount)
	}
	return tax
}
