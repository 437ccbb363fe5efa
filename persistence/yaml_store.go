package persistence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"antworld/models"
)

// YAMLStore reads layouts from a YAML file with the same shape as the JSON
// store
type YAMLStore struct {
	filePath string
	data     JSONData
}

// NewYAMLStore loads the layout file at filePath
func NewYAMLStore(filePath string) (*YAMLStore, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML store: %v", err)
	}

	store := &YAMLStore{filePath: filePath}
	if err := yaml.Unmarshal(raw, &store.data); err != nil {
		return nil, fmt.Errorf("failed to parse YAML store: %v", err)
	}
	return store, nil
}

// LoadLayout returns the named layout after validating it
func (ys *YAMLStore) LoadLayout(name string) (*models.Layout, error) {
	return lookupLayout(ys.data.Layouts, name)
}

// Close is a no-op for the YAML store
func (ys *YAMLStore) Close() error {
	return nil
}
