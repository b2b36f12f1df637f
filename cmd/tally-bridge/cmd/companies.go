package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List companies known to the accounting engine",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	companies, err := newAccounts().Companies(context.Background())
	if err != nil {
		return err
	}
	return printJSON(companies)
}
