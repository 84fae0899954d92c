package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
)

//go:embed catalog/default.yml
var defaultCatalog []byte

// Source lists the stage kinds of a catalog
type Source interface {
	ListStageKinds() ([]StageKind, error)
}

// StaticSource serves a fixed, in-memory list of stage kinds
type StaticSource []StageKind

// ListStageKinds returns a copy of the static list
func (s StaticSource) ListStageKinds() ([]StageKind, error) {
	out := make([]StageKind, len(s))
	for i, k := range s {
		out[i] = k.clone()
	}
	return out, nil
}

// FileSource reads a YAML, TOML or JSON catalog file
type FileSource struct {
	Path string
}

// ListStageKinds reads and decodes the catalog file
func (f FileSource) ListStageKinds() ([]StageKind, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.NewRegistryError(f.Path, "failed to read catalog",
			derrors.NewNotFoundError(f.Path, "catalog file does not exist"))
	}
	if err != nil {
		return nil, derrors.NewRegistryError(f.Path, "failed to read catalog", err)
	}
	return DecodeCatalog(f.Path, data)
}

// EmbeddedSource serves the catalog built into the binary
type EmbeddedSource struct{}

// ListStageKinds decodes the built-in catalog
func (EmbeddedSource) ListStageKinds() ([]StageKind, error) {
	return DecodeCatalog("default.yml", defaultCatalog)
}

// SourceFor returns a FileSource for path, or the embedded catalog when path is empty
func SourceFor(path string) Source {
	if path == "" {
		return EmbeddedSource{}
	}
	return FileSource{Path: path}
}

// DefaultCatalog returns the raw built-in catalog document
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// catalogFile mirrors the on-disk catalog layout
type catalogFile struct {
	Stages []catalogStage `koanf:"stages" json:"stages" yaml:"stages"`
}

type catalogStage struct {
	Name        string          `koanf:"name" json:"name" yaml:"name"`
	Description string          `koanf:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Role        string          `koanf:"role" json:"role,omitempty" yaml:"role,omitempty"`
	Options     []catalogOption `koanf:"options" json:"options,omitempty" yaml:"options,omitempty"`
}

type catalogOption struct {
	Name        string        `koanf:"name" json:"name" yaml:"name"`
	Type        string        `koanf:"type" json:"type,omitempty" yaml:"type,omitempty"`
	Description string        `koanf:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Default     interface{}   `koanf:"default" json:"default,omitempty" yaml:"default,omitempty"`
	Values      []interface{} `koanf:"values" json:"values,omitempty" yaml:"values,omitempty"`
	Required    bool          `koanf:"required" json:"required,omitempty" yaml:"required,omitempty"`
}

// parserFor selects a koanf parser from a file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

// DecodeCatalog parses catalog content; the format is chosen from name's extension
func DecodeCatalog(name string, data []byte) ([]StageKind, error) {
	parser, err := parserFor(name)
	if err != nil {
		return nil, derrors.NewRegistryError(name, "cannot decode catalog", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewRegistryError(name, "failed to parse catalog", err)
	}

	var file catalogFile
	if err := k.Unmarshal("", &file); err != nil {
		return nil, derrors.NewRegistryError(name, "failed to unmarshal catalog", err)
	}

	kinds := make([]StageKind, 0, len(file.Stages))
	for _, st := range file.Stages {
		kind := StageKind{
			Name:        st.Name,
			Description: st.Description,
			Role:        strings.ToLower(st.Role),
			Options:     make([]OptionSpec, 0, len(st.Options)),
		}
		for _, o := range st.Options {
			vt, ok := ParseValueType(o.Type)
			if !ok {
				vt = ValueType(o.Type)
			}
			spec := OptionSpec{
				Name:        o.Name,
				Type:        vt,
				Description: o.Description,
				Default:     scalarString(o.Default),
				Required:    o.Required,
			}
			for _, v := range o.Values {
				spec.AllowedValues = append(spec.AllowedValues, scalarString(v))
			}
			kind.Options = append(kind.Options, spec)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// scalarString renders a decoded YAML/TOML/JSON scalar the way a user would type it
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; keep integers free of a decimal point
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
