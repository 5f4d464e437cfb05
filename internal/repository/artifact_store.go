package repository

import (
	"fmt"

	domrepo "FraudScope/internal/domain/repository"
	"FraudScope/internal/feature"
	"FraudScope/internal/ml"
	"FraudScope/pkg/config"
)

// ArtifactStore loads the persisted preprocessing artifacts and fitted
// models from disk. Used once at service startup; everything it returns is
// immutable afterwards.
type ArtifactStore struct {
	schemaPath string
	scalerPath string
	lrPath     string
	rfPath     string
}

// NewArtifactStore builds a store over the configured artifact paths.
func NewArtifactStore(cfg *config.Config) *ArtifactStore {
	return &ArtifactStore{
		schemaPath: cfg.SchemaPath(),
		scalerPath: cfg.ScalerPath(),
		lrPath:     cfg.LRModelPath(),
		rfPath:     cfg.RFModelPath(),
	}
}

// LoadSchema reads the persisted training column order.
func (s *ArtifactStore) LoadSchema() (*feature.Schema, error) {
	schema, err := feature.LoadSchema(s.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return schema, nil
}

// LoadScaler reads the persisted fitted scaler.
func (s *ArtifactStore) LoadScaler() (*feature.Scaler, error) {
	scaler, err := feature.LoadScaler(s.scalerPath)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	return scaler, nil
}

// LoadClassifiers reads both fitted models, keyed by their query-parameter
// model keys.
func (s *ArtifactStore) LoadClassifiers() (map[string]domrepo.Classifier, error) {
	lr, err := ml.LoadLogistic(s.lrPath)
	if err != nil {
		return nil, fmt.Errorf("load lr model: %w", err)
	}
	rf, err := ml.LoadForest(s.rfPath)
	if err != nil {
		return nil, fmt.Errorf("load rf model: %w", err)
	}
	return map[string]domrepo.Classifier{
		"lr": lr,
		"rf": rf,
	}, nil
}
