// Package scaffolding writes the built-in starter templates and
// architectures into a project, so `stencil init` leaves a working setup.
package scaffolding

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/logging"
)

// Options configures Init.
type Options struct {
	TemplatesDir     string
	ArchitecturesDir string
	// ConfigFile, when set, receives a config pointing at both directories.
	ConfigFile string
	// Force overwrites files that already exist.
	Force bool

	Fs     afero.Fs
	Logger logging.Logger
}

// Report lists the files Init wrote and the ones it left alone.
type Report struct {
	Created []string
	Skipped []string
}

// Init writes every starter file. Existing files are skipped unless
// opts.Force is set, so running it twice is safe.
func Init(ctx context.Context, opts Options) (*Report, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.WithComponent("scaffolding")

	files := starterFiles(opts)
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	report := &Report{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		exists, err := afero.Exists(opts.Fs, path)
		if err != nil {
			return report, errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", path)
		}
		if exists && !opts.Force {
			report.Skipped = append(report.Skipped, path)
			logger.Debug(ctx, "Keeping existing file", "path", path)
			continue
		}

		if err := opts.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return report, errors.WrapIO(err, errors.ErrCodeMkdirFailed, "mkdir", filepath.Dir(path))
		}
		if err := afero.WriteFile(opts.Fs, path, []byte(files[path]), 0o644); err != nil {
			return report, errors.WrapIO(err, errors.ErrCodeWriteFailed, "write", path)
		}
		report.Created = append(report.Created, path)
	}

	logger.Info(ctx, "Starter files written", "created", len(report.Created), "skipped", len(report.Skipped))
	return report, nil
}

func starterFiles(opts Options) map[string]string {
	files := make(map[string]string)
	for _, tmpl := range BuiltinTemplates() {
		for rel, content := range tmpl.Files {
			files[filepath.Join(opts.TemplatesDir, tmpl.Name, filepath.FromSlash(rel))] = content
		}
	}
	for name, content := range BuiltinArchitectures() {
		files[filepath.Join(opts.ArchitecturesDir, name)] = content
	}
	if opts.ConfigFile != "" {
		files[opts.ConfigFile] = configFile(opts)
	}
	return files
}

func configFile(opts Options) string {
	return "# stencil configuration\n" +
		"templates_dir: " + filepath.ToSlash(opts.TemplatesDir) + "\n" +
		"architectures_dir: " + filepath.ToSlash(opts.ArchitecturesDir) + "\n" +
		"output_dir: .\n" +
		"default_type: component\n" +
		"default_architecture: screaming-architecture\n" +
		"create_folder: true\n" +
		"env_file: .env\n" +
		"log:\n" +
		"  level: info\n" +
		"  format: text\n"
}
