// Package memory provides an in-memory stand-in for the accounting engine,
// used for the disconnected demo mode and for tests. It is an explicit
// repository object injected where an Accounts implementation is needed,
// never a package-level singleton.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tally-bridge/internal/gst"
	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/tally"
	"github.com/rezonia/tally-bridge/internal/words"
)

// Repository holds companies, customers and invoices in memory.
type Repository struct {
	mu          sync.Mutex
	sellerState string
	ratePercent decimal.Decimal
	companies   []model.Company
	customers   map[string]*model.Customer
	invoices    map[string]*model.Invoice
	sequence    int
}

// Option configures the repository
type Option func(*Repository)

// WithSellerState sets the seller jurisdiction used for the GST split.
func WithSellerState(state string) Option {
	return func(r *Repository) { r.sellerState = state }
}

// WithRatePercent sets the policy tax rate.
func WithRatePercent(rate decimal.Decimal) Option {
	return func(r *Repository) { r.ratePercent = rate }
}

// WithCompanies replaces the seeded demo companies.
func WithCompanies(companies ...model.Company) Option {
	return func(r *Repository) { r.companies = companies }
}

// NewRepository creates a repository seeded with demo companies.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		sellerState: "Maharashtra",
		ratePercent: gst.DefaultRatePercent,
		companies: []model.Company{
			{ID: "Demo Traders", Name: "Demo Traders"},
			{ID: "Rezonia Exports", Name: "Rezonia Exports"},
		},
		customers: make(map[string]*model.Customer),
		invoices:  make(map[string]*model.Invoice),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func key(company, name string) string {
	return strings.ToLower(company) + "\x00" + strings.ToLower(name)
}

// Companies lists the seeded companies.
func (r *Repository) Companies(ctx context.Context) ([]model.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Company(nil), r.companies...), nil
}

// FindCustomer looks a customer up by name, case-insensitive. A missing
// customer returns (nil, nil).
func (r *Repository) FindCustomer(ctx context.Context, name, company string) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[key(company, name)]
	if !ok {
		return nil, nil
	}
	clone := *customer
	return &clone, nil
}

// CreateCustomer stores a customer. Creating an existing ledger fails the
// way the engine would, with a domain error.
func (r *Repository) CreateCustomer(ctx context.Context, c *model.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(c.CompanyID, c.Name)
	if _, exists := r.customers[k]; exists {
		return model.NewDomainError("create customer", fmt.Sprintf("ledger %q already exists", c.Name))
	}

	clone := *c
	if clone.LedgerName == "" {
		clone.LedgerName = clone.Name
	}
	clone.ID = clone.LedgerName
	clone.ParentGroup = model.DefaultParentGroup
	r.customers[k] = &clone
	return nil
}

// CreateInvoice computes totals and taxes the way the engine would and
// assigns the next sequence number.
func (r *Repository) CreateInvoice(ctx context.Context, inv *model.Invoice, customer *model.Customer) (*model.Invoice, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inv.VoucherType = model.VoucherTypeSales
	inv.CalculateTotals()
	gst.Calculate(inv.Subtotal, customer.Address.State, r.sellerState, r.ratePercent).Apply(inv)
	inv.AmountInWords = words.Rupees(inv.Total)

	r.sequence++
	inv.Number = fmt.Sprintf("DEMO-%d", r.sequence)
	inv.ID = inv.Number

	clone := *inv
	r.invoices[inv.Number] = &clone
	return inv, nil
}

// Invoice returns a stored invoice by number, or nil.
func (r *Repository) Invoice(number string) *model.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.invoices[number]; ok {
		clone := *inv
		return &clone
	}
	return nil
}

// Ping always succeeds: the demo engine is never unreachable.
func (r *Repository) Ping(ctx context.Context) error {
	return nil
}

var _ tally.Accounts = (*Repository)(nil)
