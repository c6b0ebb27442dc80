package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/generator"
	"github.com/conneroisu/stencil/internal/logging"
	"github.com/conneroisu/stencil/internal/watcher"
)

const watchDebounce = 300 * time.Millisecond

var (
	generateType     string
	generateVars     []string
	generateNoFolder bool
	generateWatch    bool
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:     "generate <name>",
	Aliases: []string{"g"},
	Short:   "Generate files from a template",
	Long: `Render a template directory for the given name.

File names containing $FILE_NAME are renamed after the name, and file
contents are rendered with the name forms (pascal_name, camel_name,
snake_name, kebab_name, hook_name, ...) plus the template variables.
Files listed in the [files] section of the template's .conf manifest are
only generated when their condition holds.

Examples:
  stencil generate UserCard                         # Uses default_type from config
  stencil generate UserCard -t component            # Explicit template
  stencil generate auth -t hook --var with_tests=true
  stencil generate Settings -t page --no-folder -o src/pages
  stencil generate UserCard -t component --watch    # Regenerate on template changes`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, map[string]string{
			"output":  "output_dir",
			"workers": "workers",
		})
	},
	RunE: runGenerateCommand,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringVarP(&generateType, "type", "t", "", "Template type (default: default_type from config)")
	generateCmd.Flags().
		StringArrayVar(&generateVars, "var", nil, "Template variable override as KEY=VALUE (repeatable)")
	generateCmd.Flags().
		BoolVar(&generateNoFolder, "no-folder", false, "Write files directly into the output directory")
	generateCmd.Flags().
		StringP("output", "o", "", "Output directory (default: output_dir from config)")
	generateCmd.Flags().
		Int("workers", 0, "Concurrent file renders (default: one per CPU)")
	generateCmd.Flags().
		BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the template changes")

	AddFlagValidation(generateCmd, "workers", ValidatePositive)
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	templateType := generateType
	if templateType == "" {
		templateType = a.cfg.DefaultType
	}
	if templateType == "" {
		return fmt.Errorf("no template type given; use --type or set default_type")
	}

	req := generator.Request{
		Name:         args[0],
		TemplateType: templateType,
		CreateFolder: a.cfg.CreateFolder && !generateNoFolder,
		Variables:    generator.ParseVarOverrides(generateVars, logging.WarningSink(ctx, a.logger)),
	}

	if err := generateOnce(ctx, a.generator, req, cmd.OutOrStdout()); err != nil {
		reportNotFound(cmd.ErrOrStderr(), err, "template", templateType, a.generator.ListTemplates)
		return err
	}

	if !generateWatch {
		return nil
	}
	return watchTemplate(ctx, a.generator, req, a.logger, cmd.OutOrStdout())
}

func generateOnce(ctx context.Context, gen *generator.Generator, req generator.Request, out io.Writer) error {
	report, err := gen.Generate(ctx, req)
	if err != nil {
		if report != nil && report.Batch != nil {
			written := len(report.Batch.ByStatus(generator.StatusWritten))
			fmt.Fprintf(out, "Generation failed after writing %d file(s) in %s\n", written, report.OutputDir)
		}
		return err
	}

	fmt.Fprintf(out, "Generated %s '%s' in %s\n", report.TemplateType, report.Name, report.OutputDir)
	for _, f := range report.Files {
		fmt.Fprintf(out, "  + %s\n", f)
	}
	if len(report.Excluded) > 0 {
		fmt.Fprintf(out, "  (%d file(s) skipped by conditions)\n", len(report.Excluded))
	}
	return nil
}

// watchTemplate regenerates req every time a file of its template changes,
// until ctx is cancelled. Failed regenerations are logged and watching goes
// on.
func watchTemplate(ctx context.Context, gen *generator.Generator, req generator.Request, logger logging.Logger, out io.Writer) error {
	dir := filepath.Join(gen.TemplatesDir(), req.TemplateType)

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Stop()

	if err := fw.AddRecursive(dir); err != nil {
		return errors.WrapIO(err, errors.ErrCodeReadFailed, "watch", dir)
	}
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.NoEditorTempFilter)
	fw.AddFilter(watcher.UnderDir(dir))
	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Info(ctx, "Template changed", "template", req.TemplateType, "files", len(events))
		if err := generateOnce(ctx, gen, req, out); err != nil {
			logger.Error(ctx, err, "Regeneration failed", "template", req.TemplateType)
		}
		return nil
	})

	if err := fw.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", dir)

	<-ctx.Done()
	return nil
}

// reportNotFound prints suggestions when err is a NotFound error.
func reportNotFound(w io.Writer, err error, kind, requested string, list func() ([]string, error)) {
	if !errors.IsNotFound(err) {
		return
	}
	available, listErr := list()
	if listErr != nil {
		return
	}
	fmt.Fprint(w, errors.FormatSuggestions(errors.NotFoundSuggestions(kind, requested, available)))
}
