// Package main is the entry point for the gurps-api server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "gurps-api",
	Short: "GURPS character sheet server",
	Long: `gurps-api keeps GURPS 4th edition character sheets consistent: derived
characteristics, skill levels, encumbrance and the point ledger are recomputed
on every change. Sheets are served over gRPC and can be converted offline.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
