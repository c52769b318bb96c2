package data

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/harbor/pkg/logging"
)

// Reader loads and stores test data files. YAML and JSON are supported.
type Reader struct {
	fs  afero.Fs
	log *logging.Logger
}

// NewReader creates a reader over the OS filesystem.
func NewReader() *Reader {
	return NewReaderFs(afero.NewOsFs())
}

// NewReaderFs creates a reader over an explicit filesystem.
func NewReaderFs(fs afero.Fs) *Reader {
	log, _ := logging.NewLogger("data")
	return &Reader{fs: fs, log: log}
}

// ReadYAML reads a YAML file into a generic map.
func (r *Reader) ReadYAML(path string) (map[string]interface{}, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data := make(map[string]interface{})
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	r.log.Debugf("loaded yaml file %s", path)
	return data, nil
}

// ReadYAMLInto reads a YAML file into the given value.
func (r *Reader) ReadYAMLInto(path string, v interface{}) error {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ReadJSON reads a JSON file into a generic map.
func (r *Reader) ReadJSON(path string) (map[string]interface{}, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data := make(map[string]interface{})
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	r.log.Debugf("loaded json file %s", path)
	return data, nil
}

// JSONValue reads a JSON file and returns the value at a dotted key path,
// e.g. "users.valid.email".
func (r *Reader) JSONValue(path, keyPath string) (string, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := gjson.GetBytes(raw, keyPath)
	if !result.Exists() {
		return "", fmt.Errorf("key %q not found in %s", keyPath, path)
	}
	return result.String(), nil
}

// WriteYAML writes a value to a YAML file, creating parent directories.
func (r *Reader) WriteYAML(path string, v interface{}) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml for %s: %w", path, err)
	}
	return r.write(path, raw)
}

// WriteJSON writes a value to an indented JSON file, creating parent
// directories.
func (r *Reader) WriteJSON(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json for %s: %w", path, err)
	}
	return r.write(path, raw)
}

func (r *Reader) write(path string, raw []byte) error {
	if err := r.fs.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(r.fs, path, raw, 0640); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	r.log.Debugf("wrote data file %s", path)
	return nil
}
