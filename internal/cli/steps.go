package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"relay-core/internal/model"
	"relay-core/internal/source"
	"relay-core/internal/spec"
)

var stepsCmd = &cobra.Command{
	Use:          "steps <file-or-url>",
	Short:        "List the steps of a pipeline specification",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := fetchAndLoad(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTYPE\tINPUTS")
		for _, step := range p.Steps {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", step.ID, step.Type, formatRefs(step.Inputs))
		}
		return tw.Flush()
	},
}

// fetchAndLoad resolves a file path or URL and runs the full load pass.
func fetchAndLoad(ctx context.Context, ref string) (*model.PipelineSpec, error) {
	data, err := source.ForRef(ref).Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return spec.Load(data)
}

func formatRefs(refs []model.OutputRef) string {
	if len(refs) == 0 {
		return "-"
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = ref.StepID + "." + ref.Output
	}
	return strings.Join(parts, ", ")
}
