// Package cmd provides the command-line interface for stencil.
//
// Commands are built with Cobra and read their settings through Viper, so
// every option can come from a flag, a STENCIL_ environment variable or a
// .stencil.yml file.
//
// # Configuration System
//
// Settings are resolved with the following precedence:
//  1. Command-line flags (--config, --output, --log-level, etc.), highest priority
//  2. STENCIL_CONFIG_FILE environment variable, a custom config file path
//  3. Individual environment variables (STENCIL_TEMPLATES_DIR, STENCIL_LOG_LEVEL, etc.)
//  4. Configuration file (.stencil.yml), lowest priority
//
// # Available Commands
//
//   - generate: Render one template into a new component, hook or page
//   - feature: Scaffold a whole feature from an architecture description
//   - describe: Show the variables, conditional files and examples of a template
//   - list: List available templates and architectures
//   - version: Show version information
//
// # Command Examples
//
//	// Generate a component into ./UserProfile
//	stencil generate UserProfile -t component
//
//	// Override template variables
//	stencil generate Button -t component --var style=css --var with_tests=true
//
//	// Regenerate whenever the template changes
//	stencil generate Button -t component --watch
//
//	// Scaffold a feature using an architecture
//	stencil feature checkout -a screaming-architecture
package cmd
