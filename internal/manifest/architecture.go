package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/stencil/internal/errors"
	"github.com/conneroisu/stencil/internal/validation"
)

// DefaultArchitecture is loaded when a requested architecture is absent.
const DefaultArchitecture = "default"

// architectureExts are tried in order when resolving a name.
var architectureExts = []string{".json", ".yaml", ".yml"}

// Architecture binds template partials to sub-directories of a feature.
type Architecture struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Benefits    []string         `json:"benefits" yaml:"benefits"`
	Limitations []string         `json:"limitations" yaml:"limitations"`
	Structure   []StructureEntry `json:"structure" yaml:"structure"`

	// Source is the file the architecture was read from.
	Source string `json:"-" yaml:"-"`
}

// StructureEntry is one step of an architecture, processed in manifest order.
type StructureEntry struct {
	Path            string `json:"path" yaml:"path"`
	Template        string `json:"template" yaml:"template"`
	FilenamePattern string `json:"filename_pattern" yaml:"filename_pattern"`
	Description     string `json:"description" yaml:"description"`
}

// ParseArchitecture decodes an architecture description. ext selects the
// decoder: ".json" or a YAML extension.
func ParseArchitecture(data []byte, ext string) (*Architecture, error) {
	var arch Architecture

	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(data, &arch)
	} else {
		err = yaml.Unmarshal(data, &arch)
	}
	if err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeArchitectureInvalid, "failed to parse architecture")
	}

	for i, entry := range arch.Structure {
		if strings.TrimSpace(entry.Template) == "" {
			return nil, errors.NewMalformedConfigError(errors.ErrCodeArchitectureInvalid,
				fmt.Sprintf("structure entry %d (%q) has no template", i, entry.Path))
		}
		if err := validation.ValidateRelativePath(entry.Path); err != nil {
			return nil, errors.NewMalformedConfigError(errors.ErrCodeArchitectureInvalid,
				fmt.Sprintf("structure entry %d path %q must stay inside the feature directory", i, entry.Path))
		}
	}

	return &arch, nil
}

// ArchitectureStore reads architecture descriptions from a directory.
type ArchitectureStore struct {
	fs  afero.Fs
	dir string
}

// NewArchitectureStore creates a store over dir.
func NewArchitectureStore(fs afero.Fs, dir string) *ArchitectureStore {
	return &ArchitectureStore{fs: fs, dir: dir}
}

// Dir returns the directory the store reads from.
func (s *ArchitectureStore) Dir() string {
	return s.dir
}

// Load returns the named architecture, falling back to the default one when
// it does not exist. Only when neither exists is a NotFound error returned.
func (s *ArchitectureStore) Load(name string) (*Architecture, error) {
	if name == "" {
		name = DefaultArchitecture
	}

	path, err := s.find(name)
	if err != nil {
		return nil, err
	}
	if path == "" && name != DefaultArchitecture {
		path, err = s.find(DefaultArchitecture)
		if err != nil {
			return nil, err
		}
	}
	if path == "" {
		return nil, errors.ErrArchitectureNotFound(name, filepath.Join(s.dir, name+architectureExts[0]))
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "read", path)
	}

	arch, err := ParseArchitecture(data, filepath.Ext(path))
	if err != nil {
		if se, ok := err.(*errors.StencilError); ok {
			return nil, se.WithPath(path)
		}
		return nil, err
	}
	if arch.Name == "" {
		arch.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	arch.Source = path
	return arch, nil
}

// find resolves name to an existing file. Names that are not plain file
// names never resolve.
func (s *ArchitectureStore) find(name string) (string, error) {
	if validation.ValidateSegment(name) != nil {
		return "", nil
	}
	for _, ext := range architectureExts {
		path := filepath.Join(s.dir, name+ext)
		ok, err := afero.Exists(s.fs, path)
		if err != nil {
			return "", errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", path)
		}
		if ok {
			return path, nil
		}
	}
	return "", nil
}

// List returns the available architecture names, sorted. The default
// architecture and hidden files are excluded.
func (s *ArchitectureStore) List() ([]string, error) {
	ok, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "stat", s.dir)
	}
	if !ok {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "readdir", s.dir)
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isArchitectureExt(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if name == DefaultArchitecture {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isArchitectureExt(ext string) bool {
	for _, e := range architectureExts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
