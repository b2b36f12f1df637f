// Package server exposes the wizard flow over a REST API consumed by the
// browser front end.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/render"
	"github.com/rezonia/tally-bridge/internal/tally"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	accounts tally.Accounts
	log      *zap.Logger
}

// NewServer creates a new API server on top of an Accounts implementation:
// the live gateway, or the in-memory repository in demo mode.
func NewServer(config *Config, accounts tally.Accounts, log *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		accounts: accounts,
		log:      log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/companies", s.handleCompanies)
		v1.GET("/customers", s.handleFindCustomer)
		v1.POST("/customers", s.handleCreateCustomer)
		v1.POST("/invoices", s.handleCreateInvoice)
		v1.POST("/invoices/pdf", s.handleInvoicePDF)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	engine := "reachable"
	if err := s.accounts.Ping(c.Request.Context()); err != nil {
		engine = "unreachable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"engine": engine,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCompanies(c *gin.Context) {
	companies, err := s.accounts.Companies(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if companies == nil {
		companies = []model.Company{}
	}
	c.JSON(http.StatusOK, CompaniesResponse{Companies: companies})
}

func (s *Server) handleFindCustomer(c *gin.Context) {
	name := c.Query("name")
	company := c.Query("company")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter 'name' is required"})
		return
	}

	customer, err := s.accounts.FindCustomer(c.Request.Context(), name, company)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, FindCustomerResponse{
		Found:    customer != nil,
		Customer: customer,
	})
}

func (s *Server) handleCreateCustomer(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := s.accounts.CreateCustomer(c.Request.Context(), &customer); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted YYYY-MM-DD"})
		return
	}

	inv := &model.Invoice{
		Date:         date,
		CustomerName: req.Customer.Name,
		CompanyID:    req.CompanyID,
		Items:        req.Items,
	}

	created, err := s.accounts.CreateInvoice(c.Request.Context(), inv, &req.Customer)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, InvoiceResponse{Invoice: created})
}

func (s *Server) handleInvoicePDF(c *gin.Context) {
	var req PDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	pdf, err := render.InvoicePDF(&req.Invoice, &req.Customer)
	if err != nil {
		s.log.Error("invoice rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render invoice"})
		return
	}
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// writeError maps the error taxonomy to HTTP status codes: validation 400,
// domain 422, transport 502, connectivity 503.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		validationErr   *model.ValidationError
		domainErr       *model.DomainError
		transportErr    *model.TransportError
		connectivityErr *model.ConnectivityError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "validation"})
	case errors.As(err, &domainErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: "domain"})
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Kind: "transport"})
	case errors.As(err, &connectivityErr):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Kind: "connectivity"})
	default:
		s.log.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
