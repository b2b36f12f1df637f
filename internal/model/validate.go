package model

import (
	"regexp"
	"strings"
)

// gstinPattern is the 15-character GSTIN format: state code, PAN, entity
// number, default "Z", checksum.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN checks the tax registration number format. Empty is valid:
// it means the ledger is unregistered.
func ValidateGSTIN(gstin string) error {
	if gstin == "" {
		return nil
	}
	if !gstinPattern.MatchString(strings.ToUpper(gstin)) {
		return NewValidationError("gstin", gstin, "format", "must be a 15-character GSTIN")
	}
	return nil
}

// Validate checks the fields required before a customer can be sent to the engine.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", nil, "required", "customer name is required")
	}
	if strings.TrimSpace(c.CompanyID) == "" {
		return NewValidationError("company_id", nil, "required", "owning company is required")
	}
	if strings.TrimSpace(c.Address.Line1) == "" {
		return NewValidationError("address.line1", nil, "required", "address line 1 is required")
	}
	return ValidateGSTIN(c.GSTIN)
}

// Validate checks a line item before invoice construction.
func (li *LineItem) Validate() error {
	if strings.TrimSpace(li.Description) == "" {
		return NewValidationError("description", nil, "required", "line description is required")
	}
	if !li.Quantity.IsPositive() {
		return NewValidationError("quantity", li.Quantity.String(), "positive", "quantity must be greater than zero")
	}
	if li.Rate.IsNegative() {
		return NewValidationError("rate", li.Rate.String(), "non-negative", "rate cannot be negative")
	}
	return nil
}

// Validate checks the fields required before an invoice can be sent to the engine.
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.CustomerName) == "" {
		return NewValidationError("customer_name", nil, "required", "customer is required")
	}
	if strings.TrimSpace(inv.CompanyID) == "" {
		return NewValidationError("company_id", nil, "required", "owning company is required")
	}
	if inv.Date.IsZero() {
		return NewValidationError("date", nil, "required", "invoice date is required")
	}
	if len(inv.Items) == 0 {
		return NewValidationError("items", nil, "required", "at least one line item is required")
	}
	for _, li := range inv.Items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	return nil
}
