package config

import (
	"fmt"
	"strings"

	"github.com/conneroisu/stencil/internal/logging"
	"github.com/conneroisu/stencil/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		writeIssues(&builder, vr.Errors)
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(b *strings.Builder, issues []ValidationError) {
	for _, issue := range issues {
		fmt.Fprintf(b, "  • %s: %s\n", issue.Field, issue.Message)
		for _, suggestion := range issue.Suggestions {
			fmt.Fprintf(b, "    hint: %s\n", suggestion)
		}
	}
}

// ValidateConfigWithDetails checks every setting and collects all problems
// instead of stopping at the first.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateDirs(config, result)
	validateDefaults(config, result)
	validateWorkers(config, result)
	validateLog(&config.Log, result)

	result.Valid = !result.HasErrors()
	return result
}

func validateDirs(config *Config, result *ValidationResult) {
	dirs := []struct {
		field string
		value string
	}{
		{"templates_dir", config.TemplatesDir},
		{"architectures_dir", config.ArchitecturesDir},
		{"output_dir", config.OutputDir},
	}

	for _, dir := range dirs {
		if err := validation.ValidatePath(dir.value); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   dir.field,
				Value:   dir.value,
				Message: err.Error(),
				Suggestions: []string{
					fmt.Sprintf("Set %s in .stencil.yml", dir.field),
					fmt.Sprintf("Or export %s_%s", EnvPrefix, strings.ToUpper(dir.field)),
				},
			})
		}
	}
}

func validateDefaults(config *Config, result *ValidationResult) {
	if config.DefaultType != "" && validation.ValidateSegment(config.DefaultType) != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "default_type",
			Value:       config.DefaultType,
			Message:     "template type must be a directory name, not a path",
			Suggestions: []string{"Use the name of a directory under templates_dir"},
		})
	}
	if config.DefaultType == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:       "default_type",
			Message:     "no default template type; generate will require --type",
			Suggestions: []string{"Set default_type: component"},
		})
	}
	if config.DefaultArchitecture != "" && validation.ValidateSegment(config.DefaultArchitecture) != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "default_architecture",
			Value:       config.DefaultArchitecture,
			Message:     "architecture must be a file name without directories",
			Suggestions: []string{"Use the base name of a file under architectures_dir"},
		})
	}
}

func validateWorkers(config *Config, result *ValidationResult) {
	if config.Workers <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "workers",
			Value:       config.Workers,
			Message:     fmt.Sprintf("workers must be positive, got %d", config.Workers),
			Suggestions: []string{"Remove the setting to use one worker per CPU"},
		})
	}
}

func validateLog(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "log.level",
			Value:       config.Level,
			Message:     err.Error(),
			Suggestions: []string{"Valid levels: debug, info, warn, error, silent"},
		})
	}

	switch config.Format {
	case "", "text", "json":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:       "log.format",
			Value:       config.Format,
			Message:     fmt.Sprintf("unknown log format %q", config.Format),
			Suggestions: []string{"Valid formats: text, json"},
		})
	}
}
