package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelStore loads scoring models by name from a directory
type ModelStore struct {
	dataDir string
}

// NewModelStore creates a new model store
func NewModelStore(dataDir string) *ModelStore {
	return &ModelStore{dataDir: dataDir}
}

var modelExtensions = []string{".yaml", ".yml", ".json"}

// LoadModel reads <name>.yaml, <name>.yml or <name>.json. When none exists
// the built-in model is returned.
func (s *ModelStore) LoadModel(name string) (*ScoringModel, error) {
	if name == "" || s.dataDir == "" {
		return DefaultModel(), nil
	}

	for _, ext := range modelExtensions {
		path := filepath.Join(s.dataDir, name+ext)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return LoadModelFile(path)
	}

	return DefaultModel(), nil
}

// LoadModelFile decodes and validates a single model file.
func LoadModelFile(path string) (*ScoringModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var m ScoringModel
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidModel, filepath.Base(path), err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveModel writes the model as YAML under <name>.yaml
func (s *ModelStore) SaveModel(name string, m *ScoringModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	path := filepath.Join(s.dataDir, name+".yaml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}
