// Package generator renders template directories into output trees, either
// one template at a time or driven by an architecture description.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/logging"
	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/naming"
	"github.com/conneroisu/stencil/internal/render"
	"github.com/conneroisu/stencil/internal/validation"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options configures a Generator.
type Options struct {
	TemplatesDir string
	OutputDir    string
	// Workers bounds concurrent file jobs. Zero means runtime.NumCPU().
	Workers int

	Fs       afero.Fs
	Engine   render.Engine
	Env      render.EnvLookup
	Logger   logging.Logger
	Warnings errors.WarningSink

	// Now and NewUUID feed the context fields; nil uses the real sources.
	Now     func() time.Time
	NewUUID func() uuid.UUID
}

// Generator scaffolds files from templates.
type Generator struct {
	templatesDir string
	outputDir    string
	workers      int
	fs           afero.Fs
	engine       render.Engine
	env          render.EnvLookup
	logger       logging.Logger
	warn         errors.WarningSink
	now          func() time.Time
	newUUID      func() uuid.UUID
}

// New creates a Generator. Missing collaborators get working defaults: the
// OS filesystem, a fresh TemplateEngine and a no-op logger.
func New(opts Options) *Generator {
	g := &Generator{
		templatesDir: opts.TemplatesDir,
		outputDir:    opts.OutputDir,
		workers:      opts.Workers,
		fs:           opts.Fs,
		engine:       opts.Engine,
		env:          opts.Env,
		logger:       opts.Logger,
		now:          opts.Now,
		newUUID:      opts.NewUUID,
	}

	if g.outputDir == "" {
		g.outputDir = "."
	}
	if g.workers <= 0 {
		g.workers = runtime.NumCPU()
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.env == nil {
		g.env = render.NoEnv()
	}
	if g.engine == nil {
		g.engine = render.NewEngine(render.WithEnv(g.env))
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	g.logger = g.logger.WithComponent("generator")

	g.warn = opts.Warnings
	if g.warn == nil {
		g.warn = logging.WarningSink(context.Background(), g.logger)
	}

	return g
}

// Request describes one template generation.
type Request struct {
	Name         string
	TemplateType string
	// CreateFolder puts the output in a sub-directory named after Name.
	CreateFolder bool
	// Variables are CLI overrides merged over the manifest defaults.
	Variables map[string]string
}

// Report summarizes a finished generation.
type Report struct {
	Name         string
	TemplateType string
	OutputDir    string
	// Files lists the top-level entries created in OutputDir, sorted.
	Files []string
	// Excluded lists template files whose condition did not hold.
	Excluded []string
	Batch    *Batch
}

// runState is shared read-only by every job of one run.
type runState struct {
	names   naming.NameSet
	context render.Context
}

// Generate renders the template named by req.TemplateType.
//
// The run validates the template, loads its manifest, merges overrides,
// prepares the output directory, filters template files by condition and
// renders the rest concurrently. On failure the returned report still
// describes the batch, and files written before the failure stay on disk.
func (g *Generator) Generate(ctx context.Context, req Request) (*Report, error) {
	perf := logging.StartOperation(g.logger, "generate")

	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	templateDir, err := g.templateDir(req.TemplateType)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(g.fs, templateDir)
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		g.warn.Warn(w)
	}

	vars := m.Merge(req.Variables)
	rules := m.Rules(vars, g.warn)

	outputDir := g.outputPath(req.Name, req.CreateFolder)
	if err := g.fs.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeMkdirFailed, "mkdir", outputDir)
	}

	files, err := g.templateFiles(templateDir)
	if err != nil {
		return nil, err
	}

	state, err := g.newRunState(req.Name, m, vars)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Name:         req.Name,
		TemplateType: req.TemplateType,
		OutputDir:    outputDir,
	}

	jobs := make([]Job, 0, len(files))
	for _, rel := range files {
		if cond, ok := rules[rel]; ok && !cond.Eval(vars) {
			report.Excluded = append(report.Excluded, rel)
			g.logger.Debug(ctx, "Excluded by condition", "file", rel, "condition", cond.Raw)
			continue
		}
		jobs = append(jobs, Job{
			TemplateFile: filepath.Join(templateDir, filepath.FromSlash(rel)),
			Rel:          rel,
			OutputFile:   filepath.Join(outputDir, outputRel(rel, state.names)),
		})
	}

	report.Batch = runBatch(ctx, jobs, g.workers, func(_ context.Context, job Job) error {
		return g.renderFile(state, job)
	})
	report.Files = topLevel(outputDir, report.Batch)

	if err := report.Batch.Err(); err != nil {
		for _, o := range report.Batch.Outcomes {
			if o.Status != StatusWritten {
				g.logger.Debug(ctx, "Job not completed", "outcome", describeOutcome(o))
			}
		}
		perf.EndWithError(ctx, err)
		return report, err
	}

	perf.End(ctx, "template", req.TemplateType, "files", len(jobs), "excluded", len(report.Excluded))
	return report, nil
}

func (g *Generator) newRunState(name string, m *manifest.Manifest, vars map[string]string) (*runState, error) {
	names := naming.Derive(name)
	data, err := render.NewContextBuilder().
		WithName(name).
		WithNames(names).
		WithManifest(m).
		WithVariables(vars).
		WithEnv(g.env).
		WithClock(g.now).
		WithUUIDGenerator(g.newUUID).
		WithWarnings(g.warn).
		Build()
	if err != nil {
		return nil, err
	}
	return &runState{names: names, context: data}, nil
}

// renderFile runs one job: read, substitute sentinels, render, write. Files
// that are not valid UTF-8 are copied unchanged.
func (g *Generator) renderFile(state *runState, job Job) error {
	raw, err := afero.ReadFile(g.fs, job.TemplateFile)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeReadFailed, "read", job.TemplateFile)
	}

	out := raw
	if utf8.Valid(raw) {
		content := naming.ReplaceSentinels(string(raw), state.names)
		rendered, err := g.engine.Render(job.Rel, content, state.context)
		if err != nil {
			return err
		}
		out = []byte(rendered)
	}

	if err := g.fs.MkdirAll(filepath.Dir(job.OutputFile), dirPerm); err != nil {
		return errors.WrapIO(err, errors.ErrCodeMkdirFailed, "mkdir", filepath.Dir(job.OutputFile))
	}
	if err := afero.WriteFile(g.fs, job.OutputFile, out, filePerm); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "write", job.OutputFile)
	}
	return nil
}

// TemplateExists reports whether a template directory exists.
func (g *Generator) TemplateExists(templateType string) bool {
	if !validTemplateType(templateType) {
		return false
	}
	ok, err := afero.DirExists(g.fs, filepath.Join(g.templatesDir, templateType))
	return err == nil && ok
}

// ListTemplates returns the template names, sorted. Hidden directories are
// skipped and a missing templates directory yields an empty list.
func (g *Generator) ListTemplates() ([]string, error) {
	ok, err := afero.DirExists(g.fs, g.templatesDir)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", g.templatesDir)
	}
	if !ok {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(g.fs, g.templatesDir)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "readdir", g.templatesDir)
	}

	templates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			templates = append(templates, entry.Name())
		}
	}
	sort.Strings(templates)
	return templates, nil
}

// TemplatesDir returns the directory templates are read from.
func (g *Generator) TemplatesDir() string {
	return g.templatesDir
}

func (g *Generator) templateDir(templateType string) (string, error) {
	dir := filepath.Join(g.templatesDir, templateType)
	if !g.TemplateExists(templateType) {
		return "", errors.ErrTemplateNotFound(templateType, dir)
	}
	return dir, nil
}

func (g *Generator) outputPath(name string, createFolder bool) string {
	if createFolder {
		return filepath.Join(g.outputDir, name)
	}
	return g.outputDir
}

// templateFiles lists the files of a template as sorted slash-separated
// relative paths. Manifest files are skipped at any depth.
func (g *Generator) templateFiles(dir string) ([]string, error) {
	var files []string
	err := afero.Walk(g.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || info.Name() == manifest.FileName {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWalkFailed, "walk", dir)
	}
	sort.Strings(files)
	return files, nil
}

// outputRel maps a template-relative path to its output path. Only the file
// name carries sentinels; directories are kept as they are.
func outputRel(rel string, names naming.NameSet) string {
	dir, file := filepath.Split(filepath.FromSlash(rel))
	return filepath.Join(dir, naming.ReplaceFilenameSentinels(file, names))
}

// topLevel lists the distinct first path elements of every written file
// relative to dir.
func topLevel(dir string, batch *Batch) []string {
	seen := make(map[string]struct{})
	for _, o := range batch.ByStatus(StatusWritten) {
		rel, err := filepath.Rel(dir, o.Job.OutputFile)
		if err != nil {
			continue
		}
		first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		seen[first] = struct{}{}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

func validateName(name string) error {
	if err := validation.ValidateName(name); err != nil {
		return errors.ErrInvalidName(name)
	}
	return nil
}

func validTemplateType(templateType string) bool {
	return validation.ValidateSegment(templateType) == nil
}

// describeOutcome renders an outcome for logs.
func describeOutcome(o Outcome) string {
	if o.Err != nil {
		return fmt.Sprintf("%s -> %s (%s: %v)", o.Job.Rel, o.Job.OutputFile, o.Status, o.Err)
	}
	return fmt.Sprintf("%s -> %s (%s)", o.Job.Rel, o.Job.OutputFile, o.Status)
}
