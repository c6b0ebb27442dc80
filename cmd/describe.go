package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/stencil/internal/generator"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:     "describe <type>",
	Aliases: []string{"d"},
	Short:   "Show the variables and conditional files of a template",
	Long: `Describe a template without generating anything: its metadata, the
variables it accepts with their defaults and allowed values, the files that
depend on a condition and ready-to-run example commands.

Examples:
  stencil describe component
  stencil describe hook --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribeCommand,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "text", "Output format (text, json)")
	AddFlagValidation(describeCmd, "format", func(format string) error {
		return ValidateFormat(format, []string{"text", "json"})
	})
}

func runDescribeCommand(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	d, err := a.generator.Describe(args[0])
	if err != nil {
		reportNotFound(cmd.ErrOrStderr(), err, "template", args[0], a.generator.ListTemplates)
		return err
	}

	if strings.EqualFold(describeFormat, "json") {
		return writeDescriptionJSON(cmd.OutOrStdout(), d)
	}
	return writeDescription(cmd.OutOrStdout(), d)
}

type describedVariable struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Default     string   `json:"default"`
	Allowed     []string `json:"allowed_values,omitempty"`
	Description string   `json:"description,omitempty"`
}

type describedRule struct {
	File      string `json:"file"`
	Condition string `json:"condition"`
}

func writeDescriptionJSON(w io.Writer, d *generator.Description) error {
	payload := struct {
		Type        string              `json:"type"`
		Name        string              `json:"name,omitempty"`
		Description string              `json:"description,omitempty"`
		Variables   []describedVariable `json:"variables"`
		Files       []describedRule     `json:"conditional_files"`
		Examples    []generator.Example `json:"examples"`
	}{
		Type:        d.Type,
		Name:        d.Metadata.Name,
		Description: d.Metadata.Description,
		Variables:   []describedVariable{},
		Files:       []describedRule{},
		Examples:    d.Examples,
	}
	for _, v := range d.Variables {
		payload.Variables = append(payload.Variables, describedVariable{
			Name:        v.Name,
			Kind:        v.Kind.String(),
			Default:     v.Default,
			Allowed:     v.AllowedValues,
			Description: v.Description,
		})
	}
	for _, r := range d.FileRules {
		payload.Files = append(payload.Files, describedRule{File: r.Display, Condition: r.Condition.String()})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func writeDescription(w io.Writer, d *generator.Description) error {
	title := d.Type
	if d.Metadata.Name != "" {
		title = fmt.Sprintf("%s (%s)", d.Metadata.Name, d.Type)
	}
	fmt.Fprintln(w, title)
	if d.Metadata.Description != "" {
		fmt.Fprintln(w, d.Metadata.Description)
	}

	if len(d.Variables) > 0 {
		fmt.Fprintln(w, "\nVariables:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tKIND\tDEFAULT\tALLOWED\tDESCRIPTION")
		for _, v := range d.Variables {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				v.Name, v.Kind, v.Default, strings.Join(v.AllowedValues, ", "), v.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(d.FileRules) > 0 {
		fmt.Fprintln(w, "\nConditional files:")
		for _, r := range d.FileRules {
			fmt.Fprintf(w, "  %s  %s\n", r.Display, r.Condition)
		}
	}

	fmt.Fprintln(w, "\nExamples:")
	for _, e := range d.Examples {
		fmt.Fprintf(w, "  # %s\n  %s\n", e.Title, e.Command)
	}
	return nil
}
