package feature

import (
	"encoding/json"
	"fmt"
	"os"

	"FraudScope/pkg/stats"
)

// Scaler holds fitted per-column mean and standard deviation for a fixed
// subset of numeric columns. Applied identically at train and serve time.
type Scaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Std     []float64 `json:"std"`
}

// NewScaler returns an unfitted scaler.
func NewScaler() *Scaler { return &Scaler{} }

// Fit computes per-column mean and standard deviation. A zero deviation is
// stored as 1 so the transform is a no-op on constant columns.
func (s *Scaler) Fit(names []string, cols [][]float64) error {
	if len(names) != len(cols) {
		return fmt.Errorf("scaler: %d names for %d columns", len(names), len(cols))
	}
	s.Columns = make([]string, len(names))
	s.Mean = make([]float64, len(names))
	s.Std = make([]float64, len(names))
	copy(s.Columns, names)
	for j, col := range cols {
		if len(col) == 0 {
			return fmt.Errorf("scaler: column %s is empty", names[j])
		}
		s.Mean[j] = stats.Mean(col)
		s.Std[j] = stats.Std(col)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// TransformCol standardizes an entire column in place. The column name must
// be one of the fitted columns.
func (s *Scaler) TransformCol(name string, col []float64) error {
	for j, n := range s.Columns {
		if n != name {
			continue
		}
		for i := range col {
			col[i] = (col[i] - s.Mean[j]) / s.Std[j]
		}
		return nil
	}
	return fmt.Errorf("scaler: column %s not fitted", name)
}

// Apply standardizes, in place, exactly the fitted columns of a feature row
// laid out per the given schema. Columns absent from the schema are skipped.
func (s *Scaler) Apply(schema *Schema, row []float64) {
	for j, name := range s.Columns {
		if i, ok := schema.Index(name); ok {
			row[i] = (row[i] - s.Mean[j]) / s.Std[j]
		}
	}
}

// LoadScaler reads a fitted scaler persisted as JSON.
func LoadScaler(path string) (*Scaler, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scaler: %w", err)
	}
	var s Scaler
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scaler: %w", err)
	}
	if len(s.Columns) != len(s.Mean) || len(s.Columns) != len(s.Std) {
		return nil, fmt.Errorf("scaler %s: inconsistent column/mean/std lengths", path)
	}
	return &s, nil
}

// Save persists the fitted scaler as JSON.
func (s *Scaler) Save(path string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode scaler: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write scaler: %w", err)
	}
	return nil
}
