package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rezonia/tally-bridge/internal/server"
)

var serverAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server for the browser front end",
	Long: `Start an HTTP API server exposing the invoice wizard flow.

The API provides endpoints for:
  - GET  /api/v1/companies     - List companies
  - GET  /api/v1/customers     - Find a customer by name
  - POST /api/v1/customers     - Create a customer ledger
  - POST /api/v1/invoices      - Create a sales invoice
  - POST /api/v1/invoices/pdf  - Render an invoice as PDF
  - GET  /health               - Health check (includes engine reachability)

Examples:
  # Serve against a local engine
  tally-bridge serve

  # Serve in demo mode on a custom port
  tally-bridge serve --demo --address :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serverAddr != "" {
		cfg.Server.Address = serverAddr
	}

	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
	}, newAccounts(), logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", cfg.Server.Address)
	if cfg.Engine.Demo {
		fmt.Println("Demo mode: using the in-memory engine")
	} else {
		fmt.Printf("Accounting engine: %s\n", cfg.Engine.Endpoint)
	}

	return srv.Run()
}
