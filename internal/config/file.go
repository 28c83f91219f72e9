package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"
)

// DefaultSection names the unnamed leading section of an INI file.
const DefaultSection = "DEFAULT"

// File is a parsed configuration file. YAML files (.yml/.yaml) keep their
// structured values; any other extension is read as INI and yields strings.
type File struct {
	path   string
	source source
}

type source interface {
	lookup(section, parameter string) (any, bool)
}

// ReadParameter opens path and returns a single parameter from section.
func ReadParameter(path, section, parameter string) (any, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f.Lookup(section, parameter)
}

// Open parses the configuration file at path, choosing the reader by extension.
func Open(path string) (*File, error) {
	var (
		src source
		err error
	)
	if isYAML(path) {
		src, err = loadYAML(path)
	} else {
		src, err = loadINI(path)
	}
	if err != nil {
		return nil, err
	}
	return &File{path: path, source: src}, nil
}

// Path returns the location the file was read from.
func (f *File) Path() string {
	return f.path
}

// Lookup returns parameter from section or an error wrapping ErrKeyNotFound.
func (f *File) Lookup(section, parameter string) (any, error) {
	value, ok := f.source.lookup(section, parameter)
	if !ok {
		return nil, fmt.Errorf("%s: [%s] %s: %w", f.path, section, parameter, ErrKeyNotFound)
	}
	return value, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

type yamlSource map[string]any

func loadYAML(path string) (yamlSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Nested mappings must decode as plain map[string]any for lookup to match them.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w: %w", path, ErrMalformedConfig, err)
	}
	return yamlSource(doc), nil
}

func (y yamlSource) lookup(section, parameter string) (any, bool) {
	sec, ok := y[section].(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := sec[parameter]
	return value, ok
}

type iniSource struct {
	file *ini.File
}

func loadINI(path string) (iniSource, error) {
	if _, err := os.Stat(path); err != nil {
		return iniSource{}, fmt.Errorf("read file: %w", err)
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		AllowPythonMultilineValues: true,
	}, path)
	if err != nil {
		return iniSource{}, fmt.Errorf("parse INI %s: %w", path, err)
	}
	return iniSource{file: f}, nil
}

// lookup falls back to the default section for keys missing from a named
// section, matching how INI defaults are inherited.
func (s iniSource) lookup(section, parameter string) (any, bool) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil, false
	}
	if key, err := sec.GetKey(parameter); err == nil {
		return key.String(), true
	}
	if section == DefaultSection {
		return nil, false
	}
	key, err := s.file.Section(DefaultSection).GetKey(parameter)
	if err != nil {
		return nil, false
	}
	return key.String(), true
}

// decode converts a raw configuration value into out. Strings (as produced by
// INI files) are parsed as YAML flow values so structured settings can still
// be expressed there.
func decode(value any, out any) error {
	s, ok := value.(string)
	if !ok {
		return convert(value, out)
	}
	if err := yaml.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

// convert re-encodes an already structured value into out.
func convert(value any, out any) error {
	encoded, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := yaml.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
