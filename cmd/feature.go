package cmd

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/generator"
	"github.com/conneroisu/stencil/internal/logging"
)

var (
	featureArchitecture string
	featureVars         []string
	featureNoFolder     bool
)

var featureCmd = &cobra.Command{
	Use:     "feature <name>",
	Aliases: []string{"f"},
	Short:   "Scaffold a feature from an architecture",
	Long: `Generate a feature by rendering every template listed in an architecture
description, each into its own sub-directory.

Architectures are JSON or YAML files in architectures_dir. When the requested
architecture does not exist, the default architecture is used instead.

Examples:
  stencil feature checkout                              # Uses default_architecture
  stencil feature checkout -a feature-sliced
  stencil feature profile -a clean --var with_tests=true`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, map[string]string{"output": "output_dir"})
	},
	RunE: runFeatureCommand,
}

func init() {
	rootCmd.AddCommand(featureCmd)

	featureCmd.Flags().
		StringVarP(&featureArchitecture, "architecture", "a", "", "Architecture name (default: default_architecture from config)")
	featureCmd.Flags().
		StringArrayVar(&featureVars, "var", nil, "Template variable override as KEY=VALUE (repeatable)")
	featureCmd.Flags().
		BoolVar(&featureNoFolder, "no-folder", false, "Write the feature directly into the output directory")
	featureCmd.Flags().
		StringP("output", "o", "", "Output directory (default: output_dir from config)")
}

func runFeatureCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	architecture := featureArchitecture
	if architecture == "" {
		architecture = a.cfg.DefaultArchitecture
	}

	req := generator.FeatureRequest{
		Name:         args[0],
		Architecture: architecture,
		CreateFolder: a.cfg.CreateFolder && !featureNoFolder,
		Variables:    generator.ParseVarOverrides(featureVars, logging.WarningSink(ctx, a.logger)),
	}

	report, err := a.generator.GenerateFeature(ctx, req, a.archs)
	if err != nil {
		if report != nil {
			fmt.Fprintf(out, "Feature generation stopped after %d file(s) in %s\n", len(report.Files), report.OutputDir)
		}
		switch errors.CodeOf(err) {
		case errors.ErrCodeArchitectureNotFound:
			reportNotFound(cmd.ErrOrStderr(), err, "architecture", architecture, a.archs.List)
		case errors.ErrCodeTemplateNotFound:
			var se *errors.StencilError
			if stderrors.As(err, &se) {
				reportNotFound(cmd.ErrOrStderr(), err, "template", filepath.Base(se.Path), a.generator.ListTemplates)
			}
		}
		return err
	}

	if used := strings.TrimSuffix(filepath.Base(report.Architecture.Source), filepath.Ext(report.Architecture.Source)); used != architecture {
		fmt.Fprintf(out, "Architecture '%s' not found, using '%s'\n", architecture, used)
	}
	fmt.Fprintf(out, "Generated feature '%s' (%s) in %s\n", report.Name, report.Architecture.Name, report.OutputDir)
	for _, f := range report.Files {
		fmt.Fprintf(out, "  + %s\n", f)
	}
	return nil
}
