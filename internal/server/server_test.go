package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/repository/memory"
	"github.com/rezonia/tally-bridge/internal/server"
	"github.com/rezonia/tally-bridge/internal/tally"
)

func newTestServer(accounts tally.Accounts) *server.Server {
	config := &server.Config{
		Address: ":8080",
	}
	return server.NewServer(config, accounts, nil)
}

func do(srv *server.Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	w := do(srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "reachable", response["engine"])
	assert.NotEmpty(t, response["time"])
}

func TestCompaniesEndpoint(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	w := do(srv, http.MethodGet, "/api/v1/companies", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.CompaniesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Companies, 2)
	assert.Equal(t, "Demo Traders", response.Companies[0].Name)
}

func TestFindCustomerEndpoint(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, repo.CreateCustomer(context.Background(), &model.Customer{
		Name:      "Acme Traders",
		CompanyID: "Demo Traders",
		Address:   model.Address{Line1: "12 MG Road", State: "Maharashtra"},
	}))
	srv := newTestServer(repo)

	w := do(srv, http.MethodGet, "/api/v1/customers?name=Acme+Traders&company=Demo+Traders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.FindCustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Found)
	require.NotNil(t, response.Customer)
	assert.Equal(t, "Acme Traders", response.Customer.Name)
}

func TestFindCustomerEndpoint_NotFound(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	w := do(srv, http.MethodGet, "/api/v1/customers?name=Nobody&company=Demo+Traders", nil)
	assert.Equal(t, http.StatusOK, w.Code, "not found is a valid outcome, not an error status")

	var response server.FindCustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Found)
	assert.Nil(t, response.Customer)
}

func TestFindCustomerEndpoint_MissingName(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	w := do(srv, http.MethodGet, "/api/v1/customers", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCustomerEndpoint(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body, _ := json.Marshal(model.Customer{
		Name:      "Acme Traders",
		CompanyID: "Demo Traders",
		Address:   model.Address{Line1: "12 MG Road"},
	})
	w := do(srv, http.MethodPost, "/api/v1/customers", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCustomerEndpoint_ValidationError(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body, _ := json.Marshal(model.Customer{Name: "No Address", CompanyID: "Demo Traders"})
	w := do(srv, http.MethodPost, "/api/v1/customers", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "validation", response.Kind)
}

func TestCreateCustomerEndpoint_Duplicate(t *testing.T) {
	repo := memory.NewRepository()
	srv := newTestServer(repo)

	body, _ := json.Marshal(model.Customer{
		Name:      "Acme Traders",
		CompanyID: "Demo Traders",
		Address:   model.Address{Line1: "12 MG Road"},
	})
	w := do(srv, http.MethodPost, "/api/v1/customers", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(srv, http.MethodPost, "/api/v1/customers", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "engine rejections map to 422")

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "domain", response.Kind)
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body := []byte(`{
		"company_id": "Demo Traders",
		"date": "2026-08-30",
		"customer": {
			"name": "Acme Traders",
			"company_id": "Demo Traders",
			"address": {"line1": "12 MG Road", "state": "Maharashtra"}
		},
		"items": [
			{"description": "Widget", "quantity": "2", "unit": "nos", "rate": "500"}
		]
	}`)
	w := do(srv, http.MethodPost, "/api/v1/invoices", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response server.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Invoice)
	assert.Equal(t, "DEMO-1", response.Invoice.Number)
	assert.NotNil(t, response.Invoice.CGST)
	assert.Equal(t, "INR One Thousand One Hundred Eighty Only", response.Invoice.AmountInWords)
}

func TestCreateInvoiceEndpoint_BadDate(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body := []byte(`{"company_id": "Demo Traders", "date": "30-08-2026", "customer": {"name": "X"}, "items": []}`)
	w := do(srv, http.MethodPost, "/api/v1/invoices", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
}

func TestCreateInvoiceEndpoint_NoItems(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body := []byte(`{
		"company_id": "Demo Traders",
		"date": "2026-08-30",
		"customer": {"name": "Acme Traders"},
		"items": []
	}`)
	w := do(srv, http.MethodPost, "/api/v1/invoices", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoicePDFEndpoint(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	body := []byte(`{
		"invoice": {
			"number": "DEMO-1",
			"date": "2026-08-30T00:00:00Z",
			"customer_name": "Acme Traders",
			"company_id": "Demo Traders",
			"items": [
				{"description": "Widget", "quantity": "2", "unit": "nos", "rate": "500", "amount": "1000"}
			],
			"subtotal": "1000",
			"total": "1180"
		},
		"customer": {
			"name": "Acme Traders",
			"address": {"line1": "12 MG Road", "city": "Pune", "state": "Maharashtra"}
		}
	}`)
	w := do(srv, http.MethodPost, "/api/v1/invoices/pdf", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(memory.NewRepository())

	w := do(srv, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
