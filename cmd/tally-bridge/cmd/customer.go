package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/tally-bridge/internal/model"
)

var (
	customerName    string
	customerCompany string

	newCustomer model.Customer
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Find or create customer ledgers",
}

var customerFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Look a customer ledger up by name",
	RunE:  runCustomerFind,
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer ledger under Sundry Debtors",
	RunE:  runCustomerCreate,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerFindCmd)
	customerCmd.AddCommand(customerCreateCmd)

	customerFindCmd.Flags().StringVar(&customerName, "name", "", "Customer name (required)")
	customerFindCmd.Flags().StringVar(&customerCompany, "company", "", "Company to search in")
	_ = customerFindCmd.MarkFlagRequired("name")

	customerCreateCmd.Flags().StringVar(&newCustomer.Name, "name", "", "Customer name (required)")
	customerCreateCmd.Flags().StringVar(&newCustomer.CompanyID, "company", "", "Owning company (required)")
	customerCreateCmd.Flags().StringVar(&newCustomer.Address.Line1, "address1", "", "Address line 1 (required)")
	customerCreateCmd.Flags().StringVar(&newCustomer.Address.Line2, "address2", "", "Address line 2")
	customerCreateCmd.Flags().StringVar(&newCustomer.Address.City, "city", "", "City")
	customerCreateCmd.Flags().StringVar(&newCustomer.Address.State, "state", "", "State name")
	customerCreateCmd.Flags().StringVar(&newCustomer.Address.PostalCode, "pincode", "", "Postal code")
	customerCreateCmd.Flags().StringVar(&newCustomer.Phone, "phone", "", "Phone number")
	customerCreateCmd.Flags().StringVar(&newCustomer.Mobile, "mobile", "", "Mobile number")
	customerCreateCmd.Flags().StringVar(&newCustomer.Email, "email", "", "Email address")
	customerCreateCmd.Flags().StringVar(&newCustomer.GSTIN, "gstin", "", "GSTIN (omit for unregistered)")
	_ = customerCreateCmd.MarkFlagRequired("name")
	_ = customerCreateCmd.MarkFlagRequired("company")
	_ = customerCreateCmd.MarkFlagRequired("address1")
}

func runCustomerFind(cmd *cobra.Command, args []string) error {
	customer, err := newAccounts().FindCustomer(context.Background(), customerName, customerCompany)
	if err != nil {
		return err
	}
	if customer == nil {
		fmt.Printf("No ledger named %q found\n", customerName)
		return nil
	}
	return printJSON(customer)
}

func runCustomerCreate(cmd *cobra.Command, args []string) error {
	if err := newAccounts().CreateCustomer(context.Background(), &newCustomer); err != nil {
		return err
	}
	fmt.Printf("Created ledger %q under %s\n", newCustomer.Name, model.DefaultParentGroup)
	return nil
}
