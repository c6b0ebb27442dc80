// Package render builds the data context exposed to templates and renders
// template markup with the stencil helper set.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/naming"
	"github.com/conneroisu/stencil/internal/version"
)

// Context is the flat key/value map a template is rendered against.
type Context map[string]any

// String returns the value of key as a string, or "" when absent.
func (c Context) String(key string) string {
	if v, ok := c[key]; ok {
		return toString(v)
	}
	return ""
}

// DefaultEnvironment is used when neither the manifest nor NODE_ENV set one.
const DefaultEnvironment = "development"

// reserved holds the structural fields user variables cannot replace.
var reserved = map[string]struct{}{
	"name":          {},
	"pascal_name":   {},
	"camel_name":    {},
	"snake_name":    {},
	"kebab_name":    {},
	"upper_name":    {},
	"hook_name":     {},
	"context_name":  {},
	"provider_name": {},
	"page_name":     {},
}

// IsReserved reports whether key is a structural name field.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// ContextBuilder assembles a Context. Computed fields come first, then user
// variables, then synthesized booleans; CLI overrides are expected to be
// merged over manifest defaults before WithVariables.
type ContextBuilder struct {
	name        string
	names       *naming.NameSet
	environment string
	timestamps  bool
	uuids       bool
	variables   map[string]string
	options     map[string]*manifest.VariableOption
	env         EnvLookup
	now         func() time.Time
	newUUID     func() uuid.UUID
	warn        errors.WarningSink
}

// NewContextBuilder creates a builder with timestamps and UUIDs enabled.
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{
		timestamps: true,
		uuids:      true,
		env:        NoEnv(),
		now:        time.Now,
		newUUID:    uuid.New,
		warn:       errors.DiscardWarnings,
	}
}

// WithName sets the base name.
func (b *ContextBuilder) WithName(name string) *ContextBuilder {
	b.name = name
	return b
}

// WithNames supplies an already derived NameSet.
func (b *ContextBuilder) WithNames(names naming.NameSet) *ContextBuilder {
	b.names = &names
	return b
}

// WithEnvironment sets the environment. Empty falls back to NODE_ENV and
// then to DefaultEnvironment.
func (b *ContextBuilder) WithEnvironment(environment string) *ContextBuilder {
	b.environment = environment
	return b
}

// WithTimestamps toggles the timestamp fields.
func (b *ContextBuilder) WithTimestamps(enabled bool) *ContextBuilder {
	b.timestamps = enabled
	return b
}

// WithUUID toggles the uuid fields.
func (b *ContextBuilder) WithUUID(enabled bool) *ContextBuilder {
	b.uuids = enabled
	return b
}

// WithVariables sets the merged user variables.
func (b *ContextBuilder) WithVariables(vars map[string]string) *ContextBuilder {
	b.variables = vars
	return b
}

// WithOptions sets the declared option types used to synthesize booleans.
func (b *ContextBuilder) WithOptions(options map[string]*manifest.VariableOption) *ContextBuilder {
	b.options = options
	return b
}

// WithManifest applies the environment, toggles and options of m.
func (b *ContextBuilder) WithManifest(m *manifest.Manifest) *ContextBuilder {
	b.environment = m.Environment
	b.timestamps = m.EnableTimestamps
	b.uuids = m.EnableUUID
	b.options = m.Options
	return b
}

// WithEnv sets the environment lookup.
func (b *ContextBuilder) WithEnv(env EnvLookup) *ContextBuilder {
	if env != nil {
		b.env = env
	}
	return b
}

// WithClock sets the clock.
func (b *ContextBuilder) WithClock(now func() time.Time) *ContextBuilder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithUUIDGenerator sets the UUID source.
func (b *ContextBuilder) WithUUIDGenerator(fn func() uuid.UUID) *ContextBuilder {
	if fn != nil {
		b.newUUID = fn
	}
	return b
}

// WithWarnings sets the sink that receives reserved-variable warnings.
func (b *ContextBuilder) WithWarnings(warn errors.WarningSink) *ContextBuilder {
	if warn != nil {
		b.warn = warn
	}
	return b
}

// Build assembles the context. The clock and UUID source are read once, so
// every file rendered from the result shares one timestamp and one uuid.
func (b *ContextBuilder) Build() (Context, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, errors.ErrInvalidName(b.name)
	}

	names := naming.Derive(b.name)
	if b.names != nil {
		names = *b.names
	}

	ctx := make(Context, 32+len(b.variables))
	ctx["name"] = b.name
	for k, v := range naming.Forms(b.name) {
		ctx[k] = v
	}
	for k, v := range names.Fields() {
		ctx[k] = v
	}

	ctx["environment"] = b.resolveEnvironment()
	ctx["generated"] = true
	ctx["generator_name"] = version.GeneratorName
	ctx["version"] = version.GetVersion()

	b.addTimestamps(ctx)
	b.addUUID(ctx)

	// Declared options without a value render as empty, not as missing keys.
	for _, k := range sortedOptionKeys(b.options) {
		if _, ok := ctx[k]; !ok && !IsReserved(k) {
			ctx[k] = ""
		}
	}

	for _, k := range sortedVarKeys(b.variables) {
		if IsReserved(k) {
			b.warn.Warn(errors.Warning{
				Code:    errors.WarnReservedVariable,
				Subject: k,
				Message: fmt.Sprintf("variable %q is derived from the name and cannot be overridden", k),
			})
			continue
		}
		ctx[k] = b.variables[k]
	}

	b.addBooleans(ctx)
	return ctx, nil
}

func (b *ContextBuilder) resolveEnvironment() string {
	if b.environment != "" {
		return b.environment
	}
	if v, ok := b.env.Lookup("NODE_ENV"); ok && v != "" {
		return v
	}
	return DefaultEnvironment
}

func (b *ContextBuilder) addTimestamps(ctx Context) {
	keys := []string{"timestamp", "timestamp_iso", "date", "time", "year"}
	if !b.timestamps {
		for _, k := range keys {
			ctx[k] = ""
		}
		return
	}
	now := b.now().UTC()
	ctx["timestamp"] = now.Format(time.RFC3339)
	ctx["timestamp_iso"] = now.Format("2006-01-02T15:04:05.000Z")
	ctx["date"] = now.Format("2006-01-02")
	ctx["time"] = now.Format("15:04:05")
	ctx["year"] = strconv.Itoa(now.Year())
}

func (b *ContextBuilder) addUUID(ctx Context) {
	if !b.uuids {
		ctx["uuid"] = ""
		ctx["uuid_simple"] = ""
		return
	}
	id := b.newUUID()
	ctx["uuid"] = id.String()
	ctx["uuid_simple"] = strings.ReplaceAll(id.String(), "-", "")
}

// addBooleans synthesizes {var}_is_{value} for every allowed Enum value and
// {var}_bool for Boolean variables, since template conditionals test
// truthiness rather than equality.
func (b *ContextBuilder) addBooleans(ctx Context) {
	for _, name := range sortedOptionKeys(b.options) {
		opt := b.options[name]
		// An unset variable still gets false entries so templates can
		// test them without index.
		current := b.variables[name]
		switch opt.Kind {
		case manifest.KindEnum:
			for _, allowed := range opt.AllowedValues {
				key := name + "_is_" + strings.ReplaceAll(allowed, "-", "_")
				ctx[key] = current == allowed
			}
		case manifest.KindBoolean:
			ctx[name+"_bool"] = manifest.IsTruthy(current)
		}
	}
}

func sortedVarKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedOptionKeys(m map[string]*manifest.VariableOption) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
