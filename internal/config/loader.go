package config

import (
	"bytes"
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mcncl/json2struct/internal/errors"
	"github.com/mcncl/json2struct/internal/logger"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// DefaultConfigDir is the conventional local directory searched for <identifier>.toml.
const DefaultConfigDir = "configs"

// Source records where a configuration was resolved from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceLocal   Source = "local"
	SourcePath    Source = "path"
)

// Loader resolves configuration identifiers.
type Loader struct {
	Fs  afero.Fs
	Dir string
}

// NewLoader creates a Loader over fsys searching dir for local configurations.
func NewLoader(fsys afero.Fs, dir string) *Loader {
	if dir == "" {
		dir = DefaultConfigDir
	}
	return &Loader{Fs: fsys, Dir: dir}
}

// Builtins lists the embedded configuration identifiers in sorted order.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// LoadBuiltin decodes the embedded configuration called name.
func LoadBuiltin(name string) (*Config, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".toml"))
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("no built-in configuration '%s'", name), errors.ErrConfigNotFound)
	}
	return decode(data, name+".toml", "built-in configuration '"+name+"'")
}

// Load resolves identifier as a built-in name, then as <Dir>/<identifier>.toml,
// then as a file path. The first match wins.
func (l *Loader) Load(identifier string) (*Config, Source, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, "", errors.NewConfigError("configuration identifier is empty", errors.ErrConfigNotFound)
	}

	if isBuiltin(identifier) {
		cfg, err := LoadBuiltin(identifier)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("resolved configuration", "identifier", identifier, "source", SourceBuiltin)
		return cfg, SourceBuiltin, nil
	}

	local := filepath.Join(l.Dir, identifier+".toml")
	if l.isFile(local) {
		cfg, err := l.loadFile(local)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("resolved configuration", "identifier", identifier, "source", SourceLocal, "path", local)
		return cfg, SourceLocal, nil
	}

	if l.isFile(identifier) {
		cfg, err := l.loadFile(identifier)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("resolved configuration", "identifier", identifier, "source", SourcePath)
		return cfg, SourcePath, nil
	}

	return nil, "", errors.NewConfigError(fmt.Sprintf("configuration '%s' not found", identifier), errors.ErrConfigNotFound)
}

func isBuiltin(name string) bool {
	_, err := fs.Stat(builtinFS, path.Join("builtin", name+".toml"))
	return err == nil && !strings.ContainsAny(name, `/\`)
}

func (l *Loader) isFile(p string) bool {
	info, err := l.Fs.Stat(p)
	return err == nil && !info.IsDir()
}

func (l *Loader) loadFile(p string) (*Config, error) {
	data, err := afero.ReadFile(l.Fs, p)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read configuration file '%s'", p), err)
	}
	return decode(data, p, "configuration file '"+p+"'")
}

// decode picks YAML for .yaml/.yml names and TOML otherwise. Unknown keys are ignored.
func decode(data []byte, name, what string) (*Config, error) {
	cfg := &Config{}

	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse %s", what), stderrors.Join(errors.ErrConfigInvalid, describe(err)))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("invalid %s", what), stderrors.Join(errors.ErrConfigInvalid, err))
	}
	return cfg, nil
}

// decodeYAML decodes through a node tree so that a bare `null:` key, which
// YAML reads as a null scalar, still sets the null type name.
func decodeYAML(data []byte, cfg *Config) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i]
			if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!null" {
				key.Tag = "!!str"
				key.Value = "null"
			}
		}
	}
	return root.Decode(cfg)
}

// describe adds the line/column go-toml reports for syntax errors.
func describe(err error) error {
	var decodeErr *toml.DecodeError
	if stderrors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}
