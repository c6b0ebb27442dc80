package render

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/stencil/internal/naming"
)

// Timestamp formats accepted by the timestamp helper.
const (
	FormatISO      = "ISO"
	FormatDate     = "date"
	FormatTime     = "time"
	FormatDateTime = "datetime"
	FormatUnix     = "unix"
)

// FormatTimestamp renders t in one of the helper formats. Unknown formats
// fall back to RFC 3339.
func FormatTimestamp(t time.Time, format string) string {
	t = t.UTC()
	switch format {
	case FormatISO, "iso", "":
		return t.Format("2006-01-02T15:04:05Z")
	case FormatDate:
		return t.Format("2006-01-02")
	case FormatTime:
		return t.Format("15:04:05")
	case FormatDateTime:
		return t.Format("2006-01-02 15:04:05")
	case FormatUnix:
		return strconv.FormatInt(t.Unix(), 10)
	default:
		return t.Format(time.RFC3339)
	}
}

func stringHelper(fn func(string) string) func(any) string {
	return func(v any) string {
		return fn(toString(v))
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func titleCase(s string) string {
	// Casers keep state, so one is created per call.
	return cases.Title(language.Und).String(strings.Join(naming.Words(s), " "))
}

// helpers builds the function map shared by every render. Only timestamp
// and uuid read outside state, through the clock and generator in opts.
func helpers(opts *engineOptions) template.FuncMap {
	return template.FuncMap{
		"pascal_case":   stringHelper(naming.ToPascalCase),
		"camel_case":    stringHelper(naming.ToCamelCase),
		"snake_case":    stringHelper(naming.ToSnakeCase),
		"kebab_case":    stringHelper(naming.ToKebabCase),
		"upper_case":    stringHelper(strings.ToUpper),
		"lower_case":    stringHelper(strings.ToLower),
		"title_case":    stringHelper(titleCase),
		"constant_case": stringHelper(strcase.ToScreamingSnake),

		"timestamp": func(format ...string) string {
			f := FormatISO
			if len(format) > 0 {
				f = format[0]
			}
			return FormatTimestamp(opts.now(), f)
		},
		"uuid": func() string {
			return opts.newUUID().String()
		},
		"env": func(name string) string {
			if opts.env == nil {
				return ""
			}
			v, _ := opts.env.Lookup(name)
			return v
		},

		"eq": func(a, b any) bool {
			return toString(a) == toString(b)
		},
		"ne": func(a, b any) bool {
			return toString(a) != toString(b)
		},
	}
}

type engineOptions struct {
	now     func() time.Time
	newUUID func() uuid.UUID
	env     EnvLookup
}

// Option configures a TemplateEngine.
type Option func(*engineOptions)

// WithClock sets the clock read by the timestamp helper.
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithUUIDGenerator sets the generator used by the uuid helper.
func WithUUIDGenerator(fn func() uuid.UUID) Option {
	return func(o *engineOptions) {
		if fn != nil {
			o.newUUID = fn
		}
	}
}

// WithEnv sets the lookup used by the env helper.
func WithEnv(env EnvLookup) Option {
	return func(o *engineOptions) {
		o.env = env
	}
}
