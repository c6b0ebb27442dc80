package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/naming"
)

const (
	maxFlipExamples    = 3
	examplePlaceholder = "ComponentName"
)

// VariableInfo describes one template variable.
type VariableInfo struct {
	Name          string
	Kind          manifest.Kind
	Default       string
	AllowedValues []string
	Description   string
	// Declared is false for plain defaults without an option declaration.
	Declared bool
}

// FileRule describes one conditional file of a template.
type FileRule struct {
	Pattern   string
	Display   string
	Condition manifest.Condition
}

// Example is a ready-to-run invocation.
type Example struct {
	Title   string `json:"title"`
	Command string `json:"command"`
}

// Description is everything a user needs to drive a template.
type Description struct {
	Type      string
	Metadata  manifest.Metadata
	Variables []VariableInfo
	FileRules []FileRule
	Examples  []Example
}

// Describe inspects a template without generating anything.
func (g *Generator) Describe(templateType string) (*Description, error) {
	dir, err := g.templateDir(templateType)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(g.fs, dir)
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		g.warn.Warn(w)
	}
	return describe(templateType, m), nil
}

func describe(templateType string, m *manifest.Manifest) *Description {
	d := &Description{Type: templateType, Metadata: m.Metadata}

	for _, name := range m.VariableNames() {
		info := VariableInfo{Name: name, Default: m.Variables[name], Kind: manifest.KindString}
		if opt, ok := m.Options[name]; ok {
			info.Declared = true
			info.Kind = opt.Kind
			info.AllowedValues = opt.AllowedValues
			info.Description = opt.Description
		}
		d.Variables = append(d.Variables, info)
	}

	known := func(name string) bool {
		_, ok := m.Variables[name]
		if !ok {
			_, ok = m.Options[name]
		}
		return ok
	}
	preview := naming.Derive(examplePlaceholder)
	for pattern, raw := range m.FileRules {
		d.FileRules = append(d.FileRules, FileRule{
			Pattern:   pattern,
			Display:   outputRelSlash(pattern, preview),
			Condition: manifest.ParseCondition(raw, known),
		})
	}
	sort.Slice(d.FileRules, func(i, j int) bool {
		return d.FileRules[i].Pattern < d.FileRules[j].Pattern
	})

	d.Examples = examples(templateType, d.Variables)
	return d
}

func outputRelSlash(pattern string, names naming.NameSet) string {
	dir, file := "", pattern
	if i := strings.LastIndex(pattern, "/"); i >= 0 {
		dir, file = pattern[:i+1], pattern[i+1:]
	}
	return dir + naming.ReplaceFilenameSentinels(file, names)
}

// examples builds a basic invocation, up to three that flip one boolean or
// enum away from its default, and a full one when two or more options exist.
func examples(templateType string, vars []VariableInfo) []Example {
	base := fmt.Sprintf("stencil generate %s -t %s", examplePlaceholder, templateType)
	out := []Example{{Title: "Basic (with defaults)", Command: base}}

	var options []VariableInfo
	for _, v := range vars {
		if v.Kind == manifest.KindBoolean || v.Kind == manifest.KindEnum {
			options = append(options, v)
		}
	}

	flips := 0
	for _, v := range options {
		if flips >= maxFlipExamples {
			break
		}
		value, ok := flipped(v)
		if !ok {
			continue
		}
		out = append(out, Example{
			Title:   fmt.Sprintf("With %s=%s", v.Name, value),
			Command: fmt.Sprintf("%s --var %s=%s", base, v.Name, value),
		})
		flips++
	}

	if len(options) >= 2 {
		var b strings.Builder
		b.WriteString(base)
		for i, v := range options {
			if i >= maxFlipExamples {
				break
			}
			value := "true"
			if v.Kind == manifest.KindEnum {
				value = v.AllowedValues[0]
			}
			fmt.Fprintf(&b, " --var %s=%s", v.Name, value)
		}
		out = append(out, Example{Title: "Full featured", Command: b.String()})
	}

	return out
}

func flipped(v VariableInfo) (string, bool) {
	switch v.Kind {
	case manifest.KindBoolean:
		if manifest.IsTruthy(v.Default) {
			return "false", true
		}
		return "true", true
	case manifest.KindEnum:
		for _, allowed := range v.AllowedValues {
			if allowed != v.Default {
				return allowed, true
			}
		}
	}
	return "", false
}
