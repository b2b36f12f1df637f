// Package tallybridge provides a public API for the accounting engine
// adapter.
//
// It exposes the core types for building engine requests, parsing engine
// responses, and creating customers and sales invoices over the local
// XML/HTTP protocol.
//
// Example usage:
//
//	gw := tallybridge.NewGateway(tallybridge.WithEndpoint("http://localhost:9000"))
//	companies, err := gw.Companies(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(companies)
package tallybridge

import (
	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/repository/memory"
	"github.com/rezonia/tally-bridge/internal/tally"
	"github.com/rezonia/tally-bridge/internal/tally/request"
	"github.com/rezonia/tally-bridge/internal/tally/response"
)

// Re-export core types for public API
type (
	Company      = model.Company
	Customer     = model.Customer
	Address      = model.Address
	Invoice      = model.Invoice
	LineItem     = model.LineItem
	TaxComponent = model.TaxComponent

	Accounts = tally.Accounts
	Gateway  = tally.Gateway
	Builder  = request.Builder
	Parser   = response.Parser

	TaxBreakdown = gst.Breakdown
)

// Re-export error types
type (
	ValidationError   = model.ValidationError
	TransportError    = model.TransportError
	ConnectivityError = model.ConnectivityError
	DomainError       = model.DomainError
)

// Re-export constructors and options
var (
	NewGateway     = tally.NewGateway
	WithEndpoint   = tally.WithEndpoint
	WithTimeout    = tally.WithTimeout
	WithHTTPClient = tally.WithHTTPClient
	WithBuilder    = tally.WithBuilder
	WithLogger     = tally.WithLogger

	NewBuilder      = request.NewBuilder
	WithSellerState = request.WithSellerState
	WithRatePercent = request.WithRatePercent
	WithInlineTax   = request.WithInlineTax

	NewParser = response.NewParser

	NewMemoryRepository = memory.NewRepository

	CalculateGST = gst.Calculate
)

// DefaultEndpoint is where a locally running engine listens.
const DefaultEndpoint = tally.DefaultEndpoint
