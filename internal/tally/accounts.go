// Package tally talks to the external accounting engine over its local
// XML/HTTP protocol.
package tally

import (
	"context"

	"github.com/rezonia/tally-bridge/internal/model"
)

// Accounts is the operation surface the wizard flow needs. It is implemented
// by the live Gateway and by the in-memory demo repository, which is swapped
// in at construction time.
type Accounts interface {
	// Companies lists the companies known to the engine.
	Companies(ctx context.Context) ([]model.Company, error)

	// FindCustomer looks a customer ledger up by name within a company.
	// A missing ledger returns (nil, nil): not found is a valid outcome.
	FindCustomer(ctx context.Context, name, company string) (*model.Customer, error)

	// CreateCustomer creates a customer ledger.
	CreateCustomer(ctx context.Context, c *model.Customer) error

	// CreateInvoice creates a Sales voucher for the customer and returns
	// the invoice with the engine-assigned number and authoritative tax
	// breakdown filled in.
	CreateInvoice(ctx context.Context, inv *model.Invoice, customer *model.Customer) (*model.Invoice, error)

	// Ping verifies the engine is reachable.
	Ping(ctx context.Context) error
}
