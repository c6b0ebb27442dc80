// Package docs documents stencil, a CLI that scaffolds source files from
// template directories.
//
// Stencil renders a folder of template files for a given name. Each file is
// rendered with Go's text/template, and the $FILE_NAME token in file names
// and content is replaced with forms of the name, so "userProfile" yields
// UserProfile.tsx, useUserProfile.ts or UserProfileContext.tsx.
//
// # Key Features
//
//   - Template Manifests: an optional .conf file declares variables,
//     allowed values and which files are only generated under a condition
//   - Name Forms: pascal, camel, snake, kebab and upper forms plus hook,
//     context, provider and page names are available to every template
//   - Architectures: JSON or YAML files combine several templates into a
//     feature layout
//   - Watch Mode: templates are re-rendered when they change on disk
//   - Starter Kit: stencil init writes working templates and architectures
//
// # Quick Start
//
//	// Write the starter templates and a .stencil.yml
//	stencil init
//
//	// See which variables a template accepts
//	stencil describe component
//
//	// Generate a component with a variable override
//	stencil generate UserCard -t component --var style=scss
//
//	// Scaffold a whole feature
//	stencil feature checkout -a screaming-architecture
//
// # Template Layout
//
// A template is a directory under templates_dir:
//
//	templates/component/
//	  .conf
//	  $FILE_NAME.tsx
//	  $FILE_NAME.module.scss
//	  index.ts
//
// The manifest uses INI-style sections:
//
//	[metadata]
//	name = React Component
//
//	[options]
//	style = scss
//	style_options = scss,css
//	with_tests = false
//	with_tests_type = boolean
//
//	[files]
//	$FILE_NAME.module.scss = var_style_scss
//	$FILE_NAME.test.tsx = var_with_tests
//
// # Configuration
//
// Settings are read from flags, STENCIL_ environment variables and
// .stencil.yml, in that order of precedence:
//
//	templates_dir: ./templates
//	architectures_dir: ./architectures
//	output_dir: .
//	default_type: component
//	default_architecture: screaming-architecture
//	create_folder: true
//	env_file: .env
//	log:
//	  level: info
//	  format: text
//
// # Testing
//
// Unit tests run on in-memory file systems. Property tests are behind the
// property build tag:
//
//	go test ./...
//	go test -tags property ./...
package docs
