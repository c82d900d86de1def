package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"relay-core/pkg/utils"
)

var validateTimeout string

var validateCmd = &cobra.Command{
	Use:          "validate <file-or-url>",
	Short:        "Validate a pipeline specification document",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), utils.ParseDuration(validateTimeout, 30*time.Second))
		defer cancel()

		p, err := fetchAndLoad(ctx, args[0])
		if err != nil {
			return err
		}

		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid pipeline %s with %d step(s)\n", args[0], name, len(p.Steps))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateTimeout, "timeout", "30s", "Fetch timeout for remote documents")
}
