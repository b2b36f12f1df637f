package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the accounting engine is reachable",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	if err := newAccounts().Ping(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Engine at %s is reachable\n", cfg.Engine.Endpoint)
	return nil
}
