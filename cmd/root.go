package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/agentic-research/carve/api"
	"github.com/agentic-research/carve/internal/config"
	"github.com/agentic-research/carve/internal/console"
	"github.com/agentic-research/carve/internal/extract"
)

var (
	configPath   string
	htmlReport   bool
	sqliteReport bool
	rewriteMode  string
	noColor      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to carve profile (YAML), defaults to $"+config.EnvProfile)
	rootCmd.PersistentFlags().BoolVar(&htmlReport, "html", false, "Also write an HTML report")
	rootCmd.PersistentFlags().BoolVar(&sqliteReport, "sqlite", false, "Also write a SQLite report")
	rootCmd.PersistentFlags().StringVar(&rewriteMode, "rewrite", "", "Import rewrite mode: resolved or always")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:           "carve <entry> <output-root>",
	Short:         "Carve: extract a source file and its dependency closure",
	Long:          "Carve copies an entry file, every local file it transitively imports and their sibling assets into <output-root>/<entry name>, then writes a dependency report next to them.",
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ex, wd, err := newExtractor(cmd)
		if err != nil {
			return err
		}
		_, err = ex.Run(cmd.Context(), extract.Request{Entry: args[0], OutputRoot: args[1], WorkDir: wd})
		return exitError(err)
	},
}

// newExtractor resolves the profile (.env, --config or $CARVE_CONFIG,
// then flag overrides) and wires an extractor over the OS filesystem.
func newExtractor(cmd *cobra.Command) (*extract.Extractor, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working dir: %w", err)
	}
	if err := config.LoadDotEnv(wd); err != nil {
		return nil, "", err
	}

	profile := config.Default()
	if path := config.ProfilePath(configPath, os.LookupEnv); path != "" {
		if profile, err = config.Load(path); err != nil {
			return nil, "", err
		}
	}
	if err := applyFlags(cmd, profile); err != nil {
		return nil, "", err
	}

	printer := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), !noColor)
	ex, err := extract.New(osfs.New("/"), nil, profile, printer)
	if err != nil {
		return nil, "", err
	}
	return ex, wd, nil
}

func applyFlags(cmd *cobra.Command, p *api.Profile) error {
	flags := cmd.Flags()
	if flags.Changed("html") {
		p.Report.HTML = htmlReport
	}
	if flags.Changed("sqlite") {
		p.Report.SQLite = sqliteReport
	}
	if flags.Changed("rewrite") {
		p.Rewrite = rewriteMode
	}
	return config.Validate(p)
}

// exitError keeps the exit status at 0 for outcomes that were already
// reported and should not fail a script: a missing entry and a failed
// analysis.
func exitError(err error) error {
	var ae *extract.AnalysisError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, extract.ErrNotFound), errors.As(err, &ae):
		return nil
	}
	return err
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
