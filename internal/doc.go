// Package internal contains the implementation packages for stencil.
//
// # Package Organization
//
//   - naming: name normalization and $FILE_NAME substitution
//   - manifest: .conf parsing, file conditions and architecture files
//   - render: render context building and the template engine
//   - generator: single template and architecture driven generation
//   - scaffolding: built-in starter templates written by stencil init
//   - watcher: debounced file system monitoring for watch mode
//   - config: viper backed configuration with validation
//   - validation: checks for names and paths used on disk
//   - errors: typed errors, warnings and suggestions
//   - logging: structured logging on log/slog
//   - version: build information
//   - testutils: fixtures shared by package tests
//
// # Data Flow
//
// A generation loads the template manifest, merges CLI overrides over its
// defaults, evaluates file conditions and builds one render context. File
// jobs then run on a bounded worker pool; the first failure stops jobs that
// have not started, and files already written stay on disk.
package internal
