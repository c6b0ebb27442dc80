package render

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/conneroisu/stencil/internal/errors"
)

// EnvLookup resolves environment variables for the env helper and the
// environment field. Rendering never reads the process environment directly.
type EnvLookup interface {
	Lookup(name string) (string, bool)
}

// EnvFunc adapts a function to EnvLookup.
type EnvFunc func(name string) (string, bool)

// Lookup implements EnvLookup.
func (f EnvFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// EnvMap is a fixed set of variables.
type EnvMap map[string]string

// Lookup implements EnvLookup.
func (m EnvMap) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// OSEnv reads the process environment.
func OSEnv() EnvLookup {
	return EnvFunc(os.LookupEnv)
}

// NoEnv resolves nothing.
func NoEnv() EnvLookup {
	return EnvMap(nil)
}

// Layered consults each lookup in order and returns the first hit.
func Layered(lookups ...EnvLookup) EnvLookup {
	return EnvFunc(func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l.Lookup(name); ok {
				return v, true
			}
		}
		return "", false
	})
}

// LoadEnvFile parses a dotenv file without touching the process
// environment. A missing file yields an empty map.
func LoadEnvFile(fs afero.Fs, path string) (EnvMap, error) {
	if path == "" {
		return EnvMap{}, nil
	}
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", path)
	}
	if !exists {
		return EnvMap{}, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "open", path)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "failed to parse env file").WithPath(path)
	}
	return EnvMap(vars), nil
}

// ProcessEnv layers the process environment over the dotenv file at path, so
// real variables win as they do with godotenv.Load.
func ProcessEnv(fs afero.Fs, path string) (EnvLookup, error) {
	file, err := LoadEnvFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Layered(OSEnv(), file), nil
}
