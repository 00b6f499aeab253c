// Package budget stores per-category budget allocations in a YAML file and
// supports interactive editing of the allocation table.
package budget

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"gobudget/internal/logging"
)

// Budget maps category names to allocated amounts.
type Budget map[string]int

// Categories returns the budgeted category names in sorted order.
func (b Budget) Categories() []string {
	out := make([]string, 0, len(b))
	for category := range b {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Store loads and saves a budget file.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a store for the given budget file path.
func NewStore(path string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the budget file. A missing file yields an empty budget rather
// than an error so first runs work without setup.
func (s *Store) Load() (Budget, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("budget file not found, starting empty",
				logging.Field{Key: "path", Value: s.path})
			return Budget{}, nil
		}
		return nil, fmt.Errorf("error reading budget file: %w", err)
	}

	budget := Budget{}
	if err := yaml.Unmarshal(data, &budget); err != nil {
		return nil, fmt.Errorf("error parsing budget file %s: %w", s.path, err)
	}
	return budget, nil
}

// Save writes the budget file, creating parent directories as needed.
func (s *Store) Save(budget Budget) error {
	data, err := yaml.Marshal(budget)
	if err != nil {
		return fmt.Errorf("error serializing budget: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating budget directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing budget file: %w", err)
	}
	s.logger.Info("budget saved",
		logging.Field{Key: "path", Value: s.path},
		logging.Field{Key: "categories", Value: len(budget)})
	return nil
}
