// Package validation checks the user-supplied names and paths that end up
// in file system operations: component names, template and architecture
// names, configured directories and architecture structure paths.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

// dangerousChars are shell metacharacters rejected in configured paths.
var dangerousChars = []string{";", "&", "|", "$", "`", "<", ">", "\""}

// ValidateName validates a component or feature name. It must be non-empty,
// carry no surrounding whitespace, never act as a path and never contain
// template delimiters, since the name is substituted into markup.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if trimmed != name {
		return fmt.Errorf("name has surrounding whitespace: %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name contains a path separator: %s", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name is a relative directory: %s", name)
	}
	if strings.Contains(name, "{{") || strings.Contains(name, "}}") {
		return fmt.Errorf("name contains template delimiters: %s", name)
	}
	return nil
}

// ValidateSegment validates a single visible directory or file name, such as
// a template type or architecture name.
func ValidateSegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(segment, `/\`) {
		return fmt.Errorf("%q must be a name, not a path", segment)
	}
	if strings.HasPrefix(segment, ".") {
		return fmt.Errorf("%q is hidden or relative", segment)
	}
	return nil
}

// ValidatePath validates a configured directory. Empty paths and shell
// metacharacters are rejected.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateRelativePath validates a path that must stay below its base
// directory once joined to it.
func ValidateRelativePath(path string) error {
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}

	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	return nil
}
