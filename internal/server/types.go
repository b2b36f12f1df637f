package server

import (
	"github.com/rezonia/tally-bridge/internal/model"
)

// CompaniesResponse is the response for the company listing endpoint
type CompaniesResponse struct {
	Companies []model.Company `json:"companies"`
}

// FindCustomerResponse is the response for the customer lookup endpoint.
// Found is false when no matching ledger exists, which is not an error.
type FindCustomerResponse struct {
	Found    bool            `json:"found"`
	Customer *model.Customer `json:"customer,omitempty"`
}

// InvoiceRequest is the payload for the invoice creation endpoint
type InvoiceRequest struct {
	CompanyID string           `json:"company_id"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Customer  model.Customer   `json:"customer"`
	Items     []model.LineItem `json:"items"`
}

// InvoiceResponse is the response for the invoice creation endpoint
type InvoiceResponse struct {
	Invoice *model.Invoice `json:"invoice"`
}

// PDFRequest is the payload for the invoice rendering endpoint
type PDFRequest struct {
	Invoice  model.Invoice  `json:"invoice"`
	Customer model.Customer `json:"customer"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
