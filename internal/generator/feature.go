package generator

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/logging"
	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/naming"
)

// ArchitectureProvider loads architecture descriptions by name.
// manifest.ArchitectureStore is the file-backed implementation.
type ArchitectureProvider interface {
	Load(name string) (*manifest.Architecture, error)
}

// FeatureRequest describes an architecture-driven generation.
type FeatureRequest struct {
	Name         string
	Architecture string
	CreateFolder bool
	Variables    map[string]string
}

// EntryReport is the result of one structure entry.
type EntryReport struct {
	Entry     manifest.StructureEntry
	OutputDir string
	Batch     *Batch
}

// FeatureReport summarizes an architecture-driven generation.
type FeatureReport struct {
	Name         string
	Architecture *manifest.Architecture
	OutputDir    string
	Entries      []EntryReport
	// Files lists every written file relative to OutputDir, sorted.
	Files []string
}

// GenerateFeature scaffolds a feature from an architecture. Structure
// entries run in order, each rendering its whole template partial into its
// own sub-directory without condition filtering. The first failing entry
// stops the run; earlier output stays on disk.
func (g *Generator) GenerateFeature(ctx context.Context, req FeatureRequest, provider ArchitectureProvider) (*FeatureReport, error) {
	perf := logging.StartOperation(g.logger, "feature")

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "no architecture provider configured", nil)
	}

	arch, err := provider.Load(req.Architecture)
	if err != nil {
		return nil, err
	}
	g.logger.Info(ctx, "Using architecture", "architecture", arch.Name, "entries", len(arch.Structure))

	report := &FeatureReport{
		Name:         req.Name,
		Architecture: arch,
		OutputDir:    g.outputPath(req.Name, req.CreateFolder),
	}
	names := naming.Derive(req.Name)

	for _, entry := range arch.Structure {
		entryReport, err := g.generateEntry(ctx, req, names, entry, report.OutputDir)
		if entryReport != nil {
			report.Entries = append(report.Entries, *entryReport)
			report.Files = append(report.Files, writtenFiles(report.OutputDir, entryReport.Batch)...)
		}
		if err != nil {
			sort.Strings(report.Files)
			perf.EndWithError(ctx, err)
			return report, err
		}
	}

	sort.Strings(report.Files)
	perf.End(ctx, "architecture", arch.Name, "files", len(report.Files))
	return report, nil
}

func (g *Generator) generateEntry(
	ctx context.Context,
	req FeatureRequest,
	names naming.NameSet,
	entry manifest.StructureEntry,
	baseDir string,
) (*EntryReport, error) {
	templateDir := filepath.Join(g.templatesDir, entry.Template)
	if !g.TemplateExists(entry.Template) {
		return nil, errors.ErrTemplateNotFound(entry.Template, templateDir).
			WithContext("structure_path", entry.Path)
	}

	m, err := manifest.Load(g.fs, templateDir)
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		g.warn.Warn(w)
	}
	vars := m.Merge(req.Variables)

	entryDir := filepath.Join(baseDir, filepath.FromSlash(entry.Path))
	if err := g.fs.MkdirAll(entryDir, dirPerm); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeMkdirFailed, "mkdir", entryDir)
	}

	files, err := g.templateFiles(templateDir)
	if err != nil {
		return nil, err
	}

	state, err := g.newRunState(req.Name, m, vars)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(files))
	for _, rel := range files {
		out := outputRel(rel, names)
		if len(files) == 1 && entry.FilenamePattern != "" {
			out = patternName(entry.FilenamePattern, rel, names)
		}
		jobs = append(jobs, Job{
			TemplateFile: filepath.Join(templateDir, filepath.FromSlash(rel)),
			Rel:          rel,
			OutputFile:   filepath.Join(entryDir, out),
		})
	}

	g.logger.Debug(ctx, "Generating structure entry",
		"path", entry.Path, "template", entry.Template, "files", len(jobs))

	batch := runBatch(ctx, jobs, g.workers, func(_ context.Context, job Job) error {
		return g.renderFile(state, job)
	})
	return &EntryReport{Entry: entry, OutputDir: entryDir, Batch: batch}, batch.Err()
}

// patternName expands an architecture filename pattern for a single-file
// partial. A pattern without an extension borrows the template's.
func patternName(pattern, rel string, names naming.NameSet) string {
	name := naming.ExpandPattern(pattern, names)
	if filepath.Ext(name) == "" {
		name += filepath.Ext(rel)
	}
	return filepath.FromSlash(name)
}

func writtenFiles(dir string, batch *Batch) []string {
	var files []string
	for _, o := range batch.ByStatus(StatusWritten) {
		if rel, err := filepath.Rel(dir, o.Job.OutputFile); err == nil {
			files = append(files, filepath.ToSlash(rel))
		}
	}
	return files
}
