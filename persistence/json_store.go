package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"antworld/models"
)

// JSONStore reads layouts from a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the layout file
type JSONData struct {
	Layouts map[string]*models.Layout `json:"layouts" yaml:"layouts"`
}

// NewJSONStore loads the layout file at filePath
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Layouts: make(map[string]*models.Layout),
		},
	}

	if err := store.loadFromFile(); err != nil {
		return nil, fmt.Errorf("failed to load JSON store: %v", err)
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, js.data)
}

// LoadLayout returns the named layout after validating it
func (js *JSONStore) LoadLayout(name string) (*models.Layout, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	return lookupLayout(js.data.Layouts, name)
}

// Close is a no-op for the JSON store
func (js *JSONStore) Close() error {
	return nil
}

func lookupLayout(layouts map[string]*models.Layout, name string) (*models.Layout, error) {
	layout, exists := layouts[name]
	if !exists || layout == nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}

	copied := *layout
	copied.Rows = append([]string(nil), layout.Rows...)
	if copied.Name == "" {
		copied.Name = name
	}
	if err := copied.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", name, err)
	}
	return &copied, nil
}
