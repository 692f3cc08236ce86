package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pricectl",
	Short: "Maintenance tooling for the model pricing catalog",
	Long: `pricectl keeps the pricing catalog tidy. It normalizes trailing
newlines in pricing JSON files, syncs model stubs into the general
catalog, and records runs in a journal for later inspection.`,
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tuiCmd)
}
