package tally

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/tally/request"
	"github.com/rezonia/tally-bridge/internal/tally/response"
	"github.com/rezonia/tally-bridge/internal/words"
)

const (
	// DefaultEndpoint is where a locally running engine listens.
	DefaultEndpoint = "http://localhost:9000"

	// DefaultTimeout bounds a single round trip.
	DefaultTimeout = 60 * time.Second

	contentType = "text/xml; charset=utf-8"
)

// Gateway performs one request/response round trip per call. It holds no
// connection state between calls and never retries; retries are fresh
// operator-initiated invocations.
type Gateway struct {
	endpoint string
	client   *http.Client
	builder  *request.Builder
	parser   *response.Parser
	log      *zap.Logger
}

// GatewayOption configures the gateway
type GatewayOption func(*Gateway)

// WithEndpoint sets the engine URL.
func WithEndpoint(endpoint string) GatewayOption {
	return func(g *Gateway) { g.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = client }
}

// WithTimeout sets the round-trip timeout on the default client.
func WithTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) { g.client.Timeout = timeout }
}

// WithBuilder sets the request builder, carrying the GST policy.
func WithBuilder(b *request.Builder) GatewayOption {
	return func(g *Gateway) { g.builder = b }
}

// WithLogger sets the logger used for request logging and parser warnings.
func WithLogger(log *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		g.log = log
		g.parser = response.NewParser(log)
	}
}

// NewGateway creates a gateway for the engine at the default local endpoint.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		builder:  request.NewBuilder(),
		parser:   response.NewParser(nil),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// send issues the single network call for one built document and classifies
// failures: connectivity (engine unreachable), transport (non-success
// status), or success with the raw body returned for parsing.
func (g *Gateway) send(ctx context.Context, operation, payload string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	g.log.Debug("sending request to engine",
		zap.String("operation", operation),
		zap.String("request_id", requestID),
		zap.Int("payload_bytes", len(payload)))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, model.NewConnectivityError(g.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewConnectivityError(g.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.NewTransportError(resp.StatusCode, string(body))
	}
	return body, nil
}

// checkMarkers converts an error-marker-bearing body into a DomainError.
func checkMarkers(operation string, body []byte) error {
	if text, found := response.ErrorText(body); found {
		return model.NewDomainError(operation, text)
	}
	return nil
}

// Companies lists the companies known to the engine.
func (g *Gateway) Companies(ctx context.Context) ([]model.Company, error) {
	const op = "list companies"

	payload, err := g.builder.Companies()
	if err != nil {
		return nil, err
	}
	body, err := g.send(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	if err := checkMarkers(op, body); err != nil {
		return nil, err
	}
	return g.parser.Companies(body)
}

// FindCustomer looks a customer ledger up by name within a company.
func (g *Gateway) FindCustomer(ctx context.Context, name, company string) (*model.Customer, error) {
	const op = "find customer"

	payload, err := g.builder.FindCustomer(name, company)
	if err != nil {
		return nil, err
	}
	body, err := g.send(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	if err := checkMarkers(op, body); err != nil {
		return nil, err
	}

	customer, err := g.parser.Customer(body)
	if err != nil || customer == nil {
		return nil, err
	}
	customer.CompanyID = company
	return customer, nil
}

// CreateCustomer creates a customer ledger under "Sundry Debtors".
func (g *Gateway) CreateCustomer(ctx context.Context, c *model.Customer) error {
	const op = "create customer"

	if err := c.Validate(); err != nil {
		return err
	}
	payload, err := g.builder.CreateCustomer(c)
	if err != nil {
		return err
	}
	body, err := g.send(ctx, op, payload)
	if err != nil {
		return err
	}
	_, err = g.parser.Ack(op, body)
	return err
}

// CreateInvoice creates a Sales voucher and, once creation succeeds, issues
// the strictly sequential follow-up read that recovers the tax breakdown the
// engine may have recomputed. The follow-up is best effort: its failure
// leaves the client-side figures in place.
func (g *Gateway) CreateInvoice(ctx context.Context, inv *model.Invoice, customer *model.Customer) (*model.Invoice, error) {
	const op = "create invoice"

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	payload, err := g.builder.CreateInvoice(inv, customer)
	if err != nil {
		return nil, err
	}
	body, err := g.send(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	ack, err := g.parser.Ack(op, body)
	if err != nil {
		return nil, err
	}
	if ack.VoucherNumber != "" {
		inv.Number = ack.VoucherNumber
	}

	g.reconcileTaxes(ctx, inv, customer)
	return inv, nil
}

// reconcileTaxes refreshes inv from the engine's own view of the voucher.
func (g *Gateway) reconcileTaxes(ctx context.Context, inv *model.Invoice, customer *model.Customer) {
	payload, err := g.builder.FetchVoucher(inv.Number, inv.CompanyID)
	if err != nil {
		g.log.Warn("building voucher fetch failed", zap.Error(err))
		return
	}
	body, err := g.send(ctx, "fetch voucher", payload)
	if err != nil {
		g.log.Warn("voucher fetch failed, keeping client-side tax figures", zap.Error(err))
		return
	}
	summary, err := g.parser.VoucherTax(body, customer.LedgerName)
	if err != nil || summary == nil {
		return
	}

	if summary.CGST != nil || summary.SGST != nil || summary.IGST != nil {
		inv.CGST = summary.CGST
		inv.SGST = summary.SGST
		inv.IGST = summary.IGST
	}
	if !summary.Total.IsZero() {
		inv.Total = summary.Total
		inv.AmountInWords = words.Rupees(inv.Total)
	}
}

// Ping verifies the engine is reachable by issuing the static company
// listing query.
func (g *Gateway) Ping(ctx context.Context) error {
	_, err := g.Companies(ctx)
	return err
}

var _ Accounts = (*Gateway)(nil)
