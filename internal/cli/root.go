// Package cli implements the relayctl commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "Validate and inspect pipeline specification documents",
	Long:  `relayctl loads declarative pipeline specs from files or URLs, runs the full validation pass, and reports what it found.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(stepsCmd)
}
