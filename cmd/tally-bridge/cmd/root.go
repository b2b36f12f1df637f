package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/tally-bridge/internal/config"
	"github.com/rezonia/tally-bridge/internal/repository/memory"
	"github.com/rezonia/tally-bridge/internal/tally"
	"github.com/rezonia/tally-bridge/internal/tally/request"
)

var (
	version = "1.0.0"

	// Global flags
	cfgFile  string
	endpoint string
	demoMode bool
	verbose  bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tally-bridge",
	Short: "Create customers and sales invoices in a Tally-style accounting engine",
	Long: `tally-bridge fronts an accounting engine reachable over its local
XML/HTTP protocol. It lists companies, finds or creates customer ledgers,
and creates Sales vouchers with a simplified GST breakdown.

Examples:
  # List companies known to the engine
  tally-bridge companies

  # Look a customer up
  tally-bridge customer find --name "Acme Stores" --company "Demo Traders"

  # Create an invoice
  tally-bridge invoice create --company "Demo Traders" --customer "Acme Stores" \
    --item "Widget:2:pcs:500"

  # Run the REST API for the browser front end
  tally-bridge serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./tally-bridge.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Accounting engine URL (default: http://localhost:9000)")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Use the in-memory demo engine instead of a live one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	if endpoint != "" {
		cfg.Engine.Endpoint = endpoint
	}
	if demoMode {
		cfg.Engine.Demo = true
	}
	if verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Format = "console"
	}

	logger, err = cfg.Log.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building logger:", err)
		os.Exit(1)
	}
}

// newBuilder assembles the request builder from the configured GST policy.
func newBuilder() *request.Builder {
	return request.NewBuilder(
		request.WithSellerState(cfg.GST.SellerState),
		request.WithRatePercent(decimal.NewFromFloat(cfg.GST.RatePercent)),
		request.WithSalesLedger(cfg.Engine.SalesLedger),
		request.WithInlineTax(cfg.Engine.InlineTax),
	)
}

// newAccounts picks the live gateway or the in-memory demo repository.
func newAccounts() tally.Accounts {
	if cfg.Engine.Demo {
		return memory.NewRepository(
			memory.WithSellerState(cfg.GST.SellerState),
			memory.WithRatePercent(decimal.NewFromFloat(cfg.GST.RatePercent)),
		)
	}
	return tally.NewGateway(
		tally.WithEndpoint(cfg.Engine.Endpoint),
		tally.WithTimeout(cfg.Engine.Timeout),
		tally.WithBuilder(newBuilder()),
		tally.WithLogger(logger),
	)
}

// printJSON renders a command result for the terminal.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
