package feature

import (
	"encoding/json"
	"fmt"
	"os"
)

// Schema is the ordered list of training-time column names. It fixes both the
// one-hot vocabulary and the final feature vector's column order. Immutable
// after creation.
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from an ordered column list.
func NewSchema(columns []string) *Schema {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	return &Schema{columns: columns, index: idx}
}

// LoadSchema reads a schema persisted as a JSON array of column names.
func LoadSchema(path string) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var columns []string
	if err := json.Unmarshal(b, &columns); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema %s is empty", path)
	}
	return NewSchema(columns), nil
}

// Save persists the schema as a JSON array of column names.
func (s *Schema) Save(path string) error {
	b, err := json.Marshal(s.columns)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

// Columns returns the ordered column names. Callers must not mutate it.
func (s *Schema) Columns() []string { return s.columns }

// Index returns the position of the named column, if it exists.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }
