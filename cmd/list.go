package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List available templates and architectures",
	Long: `List the template directories found in templates_dir and the
architecture descriptions found in architectures_dir.

Examples:
  stencil list                 # Table output
  stencil list -f json         # Output as JSON
  stencil list --format yaml   # Output as YAML`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
	AddFlagValidation(listCmd, "format", func(format string) error {
		return ValidateFormat(format, []string{"table", "json", "yaml"})
	})
}

// Inventory is what the list command reports.
type Inventory struct {
	TemplatesDir     string   `json:"templates_dir" yaml:"templates_dir"`
	Templates        []string `json:"templates" yaml:"templates"`
	ArchitecturesDir string   `json:"architectures_dir" yaml:"architectures_dir"`
	Architectures    []string `json:"architectures" yaml:"architectures"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	templates, err := a.generator.ListTemplates()
	if err != nil {
		return err
	}
	architectures, err := a.archs.List()
	if err != nil {
		return err
	}

	inv := Inventory{
		TemplatesDir:     a.generator.TemplatesDir(),
		Templates:        templates,
		ArchitecturesDir: a.archs.Dir(),
		Architectures:    architectures,
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(listFormat) {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(inv)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(inv)
	default:
		return writeInventoryTable(out, inv)
	}
}

func writeInventoryTable(w io.Writer, inv Inventory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tLOCATION")
	for _, t := range inv.Templates {
		fmt.Fprintf(tw, "template\t%s\t%s\n", t, inv.TemplatesDir)
	}
	for _, arch := range inv.Architectures {
		fmt.Fprintf(tw, "architecture\t%s\t%s\n", arch, inv.ArchitecturesDir)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(inv.Templates) == 0 {
		fmt.Fprintf(w, "\nNo templates found in %s\n", inv.TemplatesDir)
	}
	return nil
}
