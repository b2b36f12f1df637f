package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/tally-bridge/internal/model"
	"github.com/rezonia/tally-bridge/internal/render"
)

var (
	invoiceCompany  string
	invoiceCustomer string
	invoiceDate     string
	invoiceItems    []string
	invoicePDFOut   string
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create sales invoices",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Sales voucher for an existing customer",
	Long: `Create a Sales voucher. The customer must already exist as a ledger;
use "customer create" first if it does not.

Line items are given as --item "description:quantity:unit:rate[:hsn]",
repeated once per line.`,
	RunE: runInvoiceCreate,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd)

	invoiceCreateCmd.Flags().StringVar(&invoiceCompany, "company", "", "Owning company (required)")
	invoiceCreateCmd.Flags().StringVar(&invoiceCustomer, "customer", "", "Customer ledger name (required)")
	invoiceCreateCmd.Flags().StringVar(&invoiceDate, "date", "", "Invoice date YYYY-MM-DD (default: today)")
	invoiceCreateCmd.Flags().StringArrayVar(&invoiceItems, "item", nil, `Line item "description:quantity:unit:rate[:hsn]" (repeatable)`)
	invoiceCreateCmd.Flags().StringVar(&invoicePDFOut, "pdf", "", "Also write the rendered invoice PDF to this file")
	_ = invoiceCreateCmd.MarkFlagRequired("company")
	_ = invoiceCreateCmd.MarkFlagRequired("customer")
}

func runInvoiceCreate(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if invoiceDate != "" {
		var err error
		date, err = time.Parse("2006-01-02", invoiceDate)
		if err != nil {
			return fmt.Errorf("date must be formatted YYYY-MM-DD: %w", err)
		}
	}

	items, err := parseItems(invoiceItems)
	if err != nil {
		return err
	}

	ctx := context.Background()
	accounts := newAccounts()

	customer, err := accounts.FindCustomer(ctx, invoiceCustomer, invoiceCompany)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("no ledger named %q in %q; create the customer first", invoiceCustomer, invoiceCompany)
	}

	inv := &model.Invoice{
		Date:         date,
		CustomerName: customer.Name,
		CompanyID:    invoiceCompany,
		Items:        items,
	}

	created, err := accounts.CreateInvoice(ctx, inv, customer)
	if err != nil {
		return err
	}

	if invoicePDFOut != "" {
		pdf, err := render.InvoicePDF(created, customer)
		if err != nil {
			return fmt.Errorf("rendering invoice: %w", err)
		}
		if err := os.WriteFile(invoicePDFOut, pdf, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", invoicePDFOut)
	}

	return printJSON(created)
}

// parseItems parses "description:quantity:unit:rate[:hsn]" line specs.
func parseItems(specs []string) ([]model.LineItem, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}

	items := make([]model.LineItem, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 4 || len(parts) > 5 {
			return nil, fmt.Errorf("invalid item %q: want description:quantity:unit:rate[:hsn]", spec)
		}

		qty, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in item %q: %w", spec, err)
		}
		rate, err := decimal.NewFromString(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid rate in item %q: %w", spec, err)
		}

		item := model.LineItem{
			Description: parts[0],
			Quantity:    qty,
			Unit:        parts[2],
			Rate:        rate,
		}
		if len(parts) == 5 {
			item.HSNCode = parts[4]
		}
		items = append(items, item)
	}
	return items, nil
}
