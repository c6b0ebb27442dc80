package render

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/conneroisu/stencil/internal/errors"
)

// Engine renders markup against a context.
type Engine interface {
	Render(name, markup string, data Context) (string, error)
}

// TemplateEngine renders text/template markup. The helper map is built once
// at construction and the engine is safe for concurrent use.
type TemplateEngine struct {
	funcs template.FuncMap
}

// NewEngine creates an engine. Without options the helpers read the real
// clock, random UUIDs and no environment.
func NewEngine(opts ...Option) *TemplateEngine {
	o := &engineOptions{
		now:     time.Now,
		newUUID: uuid.New,
		env:     NoEnv(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &TemplateEngine{funcs: helpers(o)}
}

// Helpers returns the names of the registered helpers.
func (e *TemplateEngine) Helpers() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	return names
}

// Render executes markup against data. A reference to an undefined key is a
// rendering failure; optional keys are read with index. name only labels
// diagnostics.
func (e *TemplateEngine) Render(name, markup string, data Context) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewRenderingError(errors.ErrCodeRenderFailed,
				fmt.Sprintf("template helper panicked: %v", r), nil).WithPath(name)
		}
	}()

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(e.funcs).
		Parse(markup)
	if err != nil {
		return "", errors.WrapRendering(err, errors.ErrCodeTemplateParse, name)
	}

	var b strings.Builder
	b.Grow(len(markup))
	if err := tmpl.Execute(&b, map[string]any(data)); err != nil {
		return "", errors.WrapRendering(err, errors.ErrCodeRenderFailed, name)
	}
	return b.String(), nil
}
