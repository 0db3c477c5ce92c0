package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/carve/internal/extract"
)

var graphCmd = &cobra.Command{
	Use:   "graph <entry> <output-dir>",
	Short: "Write the dependency reports of an entry file without extracting it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ex, wd, err := newExtractor(cmd)
		if err != nil {
			return err
		}
		_, err = ex.Report(cmd.Context(), extract.Request{Entry: args[0], OutputRoot: args[1], WorkDir: wd})
		return exitError(err)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
