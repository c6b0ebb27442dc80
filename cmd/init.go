package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conneroisu/stencil/internal/config"
	"github.com/conneroisu/stencil/internal/scaffolding"
)

var (
	initForce    bool
	initNoConfig bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write starter templates and architectures",
	Long: `Write the built-in starter templates (component, hook, context, page)
into templates_dir, the starter architectures into architectures_dir and a
.stencil.yml pointing at both.

Existing files are kept unless --force is given, so init can be re-run to
restore missing starter files.

Examples:
  stencil init                 # Write missing starter files
  stencil init --force         # Overwrite starter files
  stencil init --no-config     # Leave .stencil.yml alone`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initNoConfig, "no-config", false, "Do not write a config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	opts := scaffolding.Options{
		TemplatesDir:     a.cfg.TemplatesDir,
		ArchitecturesDir: a.cfg.ArchitecturesDir,
		Force:            initForce,
		Fs:               afero.NewOsFs(),
		Logger:           a.logger,
	}
	if !initNoConfig {
		opts.ConfigFile = config.FileName + ".yml"
	}

	report, err := scaffolding.Init(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range report.Created {
		fmt.Fprintf(out, "  + %s\n", path)
	}
	if len(report.Skipped) > 0 {
		fmt.Fprintf(out, "Kept %d existing file(s), use --force to overwrite\n", len(report.Skipped))
	}
	fmt.Fprintf(out, "Initialized %d file(s). Try: stencil describe component\n", len(report.Created))
	return nil
}
