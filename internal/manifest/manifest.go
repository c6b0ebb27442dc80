// Package manifest parses template manifests, file-inclusion conditions and
// architecture descriptions.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/conneroisu/stencil/internal/errors"
)

// FileName is the manifest file inside a template directory. It is never
// rendered as output.
const FileName = ".conf"

// Kind classifies a template variable.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindEnum
)

// String returns the kind as written in a manifest.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	default:
		return "string"
	}
}

// Metadata describes a template.
type Metadata struct {
	Name        string
	Description string
}

// VariableOption holds the declared type information of one variable.
type VariableOption struct {
	Kind          Kind
	AllowedValues []string
	Description   string

	declaredType string
}

// Allows reports whether value is one of the allowed Enum values.
func (o *VariableOption) Allows(value string) bool {
	for _, v := range o.AllowedValues {
		if v == value {
			return true
		}
	}
	return false
}

// Manifest is the parsed configuration of one template.
type Manifest struct {
	Metadata  Metadata
	Variables map[string]string
	Options   map[string]*VariableOption
	// FileRules maps a template-relative path (forward slashes, sentinels
	// unreplaced) to its raw inclusion condition.
	FileRules map[string]string

	Environment      string
	EnableTimestamps bool
	EnableUUID       bool

	// Warnings are non-fatal problems found while parsing.
	Warnings []errors.Warning
}

// New returns an empty manifest with default settings.
func New() *Manifest {
	return &Manifest{
		Variables:        make(map[string]string),
		Options:          make(map[string]*VariableOption),
		FileRules:        make(map[string]string),
		EnableTimestamps: true,
		EnableUUID:       true,
	}
}

// VariableNames returns every variable that has a default or an option
// declaration, sorted.
func (m *Manifest) VariableNames() []string {
	seen := make(map[string]struct{}, len(m.Variables)+len(m.Options))
	for k := range m.Variables {
		seen[k] = struct{}{}
	}
	for k := range m.Options {
		seen[k] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge returns the manifest defaults overlaid with overrides. Neither input
// is modified.
func (m *Manifest) Merge(overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(m.Variables)+len(overrides))
	for k, v := range m.Variables {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

const (
	sectionRoot     = ""
	sectionMetadata = "metadata"
	sectionOptions  = "options"
	sectionFiles    = "files"
)

type parser struct {
	m        *Manifest
	section  string
	known    bool
	metaSeen map[string]bool
}

// Parse reads a manifest. Unknown sections and keys are ignored.
func Parse(r io.Reader) (*Manifest, error) {
	p := &parser{
		m:        New(),
		known:    true,
		metaSeen: make(map[string]bool),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.line(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err.WithLine(lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeManifestInvalid, "failed to read manifest")
	}

	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.m, nil
}

func (p *parser) line(line string) *errors.StencilError {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if strings.HasPrefix(line, "[") {
		if !strings.HasSuffix(line, "]") {
			return errors.NewMalformedConfigError(errors.ErrCodeManifestInvalid,
				fmt.Sprintf("unterminated section header %q", line))
		}
		p.section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
		switch p.section {
		case sectionMetadata, sectionOptions, sectionFiles:
			p.known = true
		default:
			p.known = false
		}
		return nil
	}

	key, raw, ok := strings.Cut(line, "=")
	if !ok {
		if !p.known || p.section == sectionRoot {
			return nil
		}
		return errors.NewMalformedConfigError(errors.ErrCodeManifestInvalid,
			fmt.Sprintf("expected key = value in [%s], got %q", p.section, line))
	}
	if !p.known {
		return nil
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.NewMalformedConfigError(errors.ErrCodeManifestInvalid, "empty key")
	}
	value := cleanValue(raw)

	switch p.section {
	case sectionMetadata:
		p.metadata(key, value)
	case sectionOptions:
		return p.option(key, value)
	case sectionFiles:
		p.m.FileRules[strings.ReplaceAll(key, "\\", "/")] = value
	default:
		p.root(key, value)
	}
	return nil
}

func (p *parser) metadata(key, value string) {
	if p.metaSeen[key] {
		return
	}
	switch key {
	case "name":
		p.m.Metadata.Name = value
	case "description":
		p.m.Metadata.Description = value
	default:
		return
	}
	p.metaSeen[key] = true
}

func (p *parser) option(key, value string) *errors.StencilError {
	switch {
	case strings.HasSuffix(key, "_options"):
		name := strings.TrimSuffix(key, "_options")
		values := splitList(value)
		if len(values) == 0 {
			return errors.NewMalformedConfigError(errors.ErrCodeManifestInvalid,
				fmt.Sprintf("option %q declares no allowed values", name))
		}
		opt := p.opt(name)
		opt.AllowedValues = values
		opt.Kind = KindEnum
	case strings.HasSuffix(key, "_type"):
		name := strings.TrimSuffix(key, "_type")
		p.opt(name).declaredType = strings.ToLower(value)
	case strings.HasSuffix(key, "_description"):
		name := strings.TrimSuffix(key, "_description")
		p.opt(name).Description = value
	default:
		p.m.Variables[key] = value
	}
	return nil
}

func (p *parser) opt(name string) *VariableOption {
	opt, ok := p.m.Options[name]
	if !ok {
		opt = &VariableOption{}
		p.m.Options[name] = opt
	}
	return opt
}

func (p *parser) root(key, value string) {
	switch key {
	case "environment":
		p.m.Environment = value
	case "enable_timestamps":
		p.m.EnableTimestamps = parseBoolDefault(value, true)
	case "enable_uuid":
		p.m.EnableUUID = parseBoolDefault(value, true)
	default:
		if name, ok := strings.CutPrefix(key, "var_"); ok && name != "" {
			p.m.Variables[name] = value
		}
	}
}

// finish resolves option kinds once every line has been seen, since the
// _type and _options keys may appear in any order.
func (p *parser) finish() *errors.StencilError {
	for _, name := range sortedKeys(p.m.Options) {
		opt := p.m.Options[name]
		switch opt.declaredType {
		case "boolean", "bool":
			if opt.Kind != KindEnum {
				opt.Kind = KindBoolean
			}
		case "enum", "select", "choice":
			if len(opt.AllowedValues) == 0 {
				return errors.NewMalformedConfigError(errors.ErrCodeManifestInvalid,
					fmt.Sprintf("enum option %q has no %s_options list", name, name))
			}
		case "", "string", "text":
		default:
			p.m.Warnings = append(p.m.Warnings, errors.Warning{
				Code:    errors.WarnUnknownOptionType,
				Subject: name,
				Message: fmt.Sprintf("unknown option type %q, treating as string", opt.declaredType),
			})
		}
	}
	return nil
}

// cleanValue strips an inline comment and surrounding quotes. A quoted value
// keeps any # it contains.
func cleanValue(raw string) string {
	value := strings.TrimSpace(raw)
	if len(value) > 0 && (value[0] == '"' || value[0] == '\'') {
		if end := strings.IndexByte(value[1:], value[0]); end >= 0 {
			return value[1 : end+1]
		}
	}
	if i := strings.IndexByte(value, '#'); i >= 0 {
		value = value[:i]
	}
	return strings.Trim(strings.TrimSpace(value), `"'`)
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBoolDefault(value string, def bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the manifest of the template stored in dir. A template without
// a manifest yields an empty one.
func Load(fs afero.Fs, dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", path)
	}
	if !exists {
		return New(), nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "open", path)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		if se, ok := err.(*errors.StencilError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	return m, nil
}
