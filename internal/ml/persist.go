package ml

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Save persists a fitted model with gob.
func Save(path string, model interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(model); err != nil {
		return fmt.Errorf("encode model %s: %w", path, err)
	}
	return nil
}

// LoadLogistic reads a persisted logistic regression model.
func LoadLogistic(path string) (*LogisticRegression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var m LogisticRegression
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &m, nil
}

// LoadForest reads a persisted random forest model.
func LoadForest(path string) (*RandomForest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var m RandomForest
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &m, nil
}
