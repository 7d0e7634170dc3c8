package main

import (
	"os"

	"github.com/spf13/cobra"

	"iprights/internal/interfaces/cli/migrate"
	"iprights/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iprights",
		Short: "iprights - an on-ledger IP rights-management service",
		Long:  `iprights tracks intellectual-property assets, ownership transfers, license grants and data-protection controls behind an append-only audit trail.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
