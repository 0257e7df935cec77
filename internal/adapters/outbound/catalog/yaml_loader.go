package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maturekit/maturekit/internal/domain"
)

// YAMLLoader implements domain.CatalogLoader by reading a rubric definition
// from a YAML file.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the catalog from path. An empty or missing path falls back to
// the built-in default catalog. Levels omitted from the file are filled in
// from the default ladder. The catalog is validated before being returned;
// validation failure is fatal to the caller.
func (l *YAMLLoader) Load(path string) (*domain.RubricCatalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var cat domain.RubricCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	if len(cat.Levels) == 0 {
		cat.Levels = domain.DefaultLevels()
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	return &cat, nil
}
