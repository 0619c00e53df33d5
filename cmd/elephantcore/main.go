// Package main contains the elephantcore cli. It uses cobra for
// command dispatch, following the same structure as other tools in
// this codebase's lineage.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "elephantcore",
		Short: "An in-memory, PostgreSQL-modeled storage engine core",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(inspectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
